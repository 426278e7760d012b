package marketdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/mocks"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/writer"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ClientTestSuite is a test suite for the Client implementation
type ClientTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockWriter *mocks.MockAnalysisWriter
	tempDir    string
	now        time.Time
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) SetupSuite() {
	tempDir, err := os.MkdirTemp("", "marketdata-client-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *ClientTestSuite) TearDownSuite() {
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ClientTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockWriter = mocks.NewMockAnalysisWriter(suite.ctrl)
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ClientTestSuite) config(providers ...ProviderConfig) ClientConfig {
	return ClientConfig{
		Providers:  providers,
		WriterType: WriterDuckDB,
		DataPath:   filepath.Join(suite.tempDir, "exports"),
	}
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestNewClientValidation() {
	testCases := []struct {
		name        string
		config      ClientConfig
		expectError bool
	}{
		{
			name:   "default providers",
			config: suite.config(ProviderConfig{Type: provider.ProviderCoinGecko}, ProviderConfig{Type: provider.ProviderYahoo}),
		},
		{
			name:        "no providers",
			config:      suite.config(),
			expectError: true,
		},
		{
			name:        "unknown provider",
			config:      suite.config(ProviderConfig{Type: "kraken"}),
			expectError: true,
		},
		{
			name:        "polygon without key",
			config:      suite.config(ProviderConfig{Type: provider.ProviderPolygon}),
			expectError: true,
		},
		{
			name:   "polygon with key",
			config: suite.config(ProviderConfig{Type: provider.ProviderPolygon, APIKey: "secret"}),
		},
		{
			name:        "negative interval",
			config:      suite.config(ProviderConfig{Type: provider.ProviderYahoo, MinRequestInterval: -time.Second}),
			expectError: true,
		},
		{
			name:        "bad base url",
			config:      suite.config(ProviderConfig{Type: provider.ProviderYahoo, BaseURL: "not a url"}),
			expectError: true,
		},
		{
			name: "missing data path",
			config: ClientConfig{
				Providers:  []ProviderConfig{{Type: provider.ProviderYahoo}},
				WriterType: WriterDuckDB,
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			client, err := NewClient(tc.config, logger.NewNopLogger())
			if tc.expectError {
				suite.Error(err)
				suite.Nil(client)

				return
			}

			suite.Require().NoError(err)
			suite.Len(client.Orchestrator().Providers(), len(tc.config.Providers))
		})
	}
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestProviderOrderIsKept() {
	client, err := NewClient(suite.config(
		ProviderConfig{Type: provider.ProviderYahoo},
		ProviderConfig{Type: provider.ProviderCoinGecko},
	), nil)
	suite.Require().NoError(err)

	providers := client.Orchestrator().Providers()
	suite.Equal("yahoo", providers[0].Name())
	suite.Equal("coingecko", providers[1].Name())
}

func (suite *ClientTestSuite) enriched() (types.EnrichedSeries, types.SignalSeries) {
	series := mocks.GenerateCloses("btc", suite.now, 100, 101, 102)

	rows := make([]types.EnrichedRow, 0, series.Len())
	for _, c := range series.Candles() {
		//nolint:exhaustruct
		rows = append(rows, types.EnrichedRow{Candle: c, RSI14: optional.Some(50.0)})
	}

	enriched := types.NewEnrichedSeries(series, rows)

	//nolint:exhaustruct
	signals := types.SignalSeries{
		Rows: []types.SignalRow{
			{Time: rows[0].Time, Final: types.SignalTypeBuy, Strength: 2},
			{Time: rows[2].Time, Final: types.SignalTypeSell, Strength: 2},
		},
	}

	return enriched, signals
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestExportWithMockWriter() {
	client, err := NewClient(suite.config(ProviderConfig{Type: provider.ProviderYahoo}), nil)
	suite.Require().NoError(err)

	var createdPath string

	client.newWriter = func(outputPath string) writer.AnalysisWriter {
		createdPath = outputPath

		return suite.mockWriter
	}

	enriched, signals := suite.enriched()

	gomock.InOrder(
		suite.mockWriter.EXPECT().Initialize().Return(nil),
		suite.mockWriter.EXPECT().Write("btc", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ string, _ types.EnrichedRow, signal types.SignalRow) error {
				suite.Equal(types.SignalTypeBuy, signal.Final)

				return nil
			}),
		suite.mockWriter.EXPECT().Write("btc", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ string, _ types.EnrichedRow, signal types.SignalRow) error {
				suite.True(signal.Abstained)

				return nil
			}),
		suite.mockWriter.EXPECT().Write("btc", gomock.Any(), gomock.Any()).Return(nil),
		suite.mockWriter.EXPECT().Finalize().DoAndReturn(func() (string, error) { return createdPath, nil }),
		suite.mockWriter.EXPECT().Close().Return(nil),
	)

	path, err := client.Export(enriched, signals, suite.now)
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(suite.tempDir, "exports", "BTC_1h_synthetic_20240301T120000.parquet"), path)
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestExportWriteFailure() {
	client, err := NewClient(suite.config(ProviderConfig{Type: provider.ProviderYahoo}), nil)
	suite.Require().NoError(err)

	client.newWriter = func(string) writer.AnalysisWriter { return suite.mockWriter }

	enriched, signals := suite.enriched()

	suite.mockWriter.EXPECT().Initialize().Return(nil)
	suite.mockWriter.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New(errors.ErrCodeExportFailed, "disk full"))
	suite.mockWriter.EXPECT().Finalize().Times(0)
	suite.mockWriter.EXPECT().Close().Return(nil)

	_, err = client.Export(enriched, signals, suite.now)
	suite.True(errors.HasCode(err, errors.ErrCodeExportFailed))
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestExportEmptySeries() {
	client, err := NewClient(suite.config(ProviderConfig{Type: provider.ProviderYahoo}), nil)
	suite.Require().NoError(err)

	empty := types.NewEnrichedSeries(types.EmptySeries("btc", types.Timeframe1h), nil)

	_, err = client.Export(empty, types.SignalSeries{}, suite.now)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

//nolint:exhaustruct
func (suite *ClientTestSuite) TestExportToParquet() {
	client, err := NewClient(suite.config(ProviderConfig{Type: provider.ProviderYahoo}), nil)
	suite.Require().NoError(err)

	enriched, signals := suite.enriched()

	path, err := client.Export(enriched, signals, suite.now)
	suite.Require().NoError(err)
	suite.FileExists(path)
}
