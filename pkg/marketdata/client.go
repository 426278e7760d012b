package marketdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// WriterType defines the type of export writer.
type WriterType string

const (
	WriterDuckDB WriterType = "duckdb"
)

// ProviderConfig configures one provider in the rotation. Zero durations take
// the provider defaults.
type ProviderConfig struct {
	Type               provider.ProviderType `yaml:"type" json:"type" validate:"required,oneof=coingecko yahoo binance polygon" jsonschema:"enum=coingecko,enum=yahoo,enum=binance,enum=polygon"`
	MinRequestInterval time.Duration         `yaml:"min_request_interval" json:"min_request_interval,omitempty" validate:"gte=0"`
	CacheTTL           time.Duration         `yaml:"cache_ttl" json:"cache_ttl,omitempty" validate:"gte=0"`
	RequestTimeout     time.Duration         `yaml:"request_timeout" json:"request_timeout,omitempty" validate:"gte=0"`
	RateLimitCooldown  time.Duration         `yaml:"rate_limit_cooldown" json:"rate_limit_cooldown,omitempty" validate:"gte=0"`
	BaseURL            string                `yaml:"base_url" json:"base_url,omitempty" validate:"omitempty,url"`
	// APIKey is read from the environment, never from the config file
	APIKey string `yaml:"-" json:"-" validate:"required_if=Type polygon"`
}

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	Providers  []ProviderConfig `validate:"required,min=1,dive"`
	WriterType WriterType       `validate:"required,oneof=duckdb"`
	DataPath   string           `validate:"required"`
}

// Client owns the provider rotation and exports analysed series.
type Client struct {
	orchestrator *Orchestrator
	config       ClientConfig
	logger       *logger.Logger
	newWriter    func(outputPath string) writer.AnalysisWriter
}

// NewClient validates the configuration and builds the providers in order.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	providers := make([]provider.DataProvider, 0, len(config.Providers))

	for _, pc := range config.Providers {
		p, err := provider.NewDataProvider(pc.Type, provider.Options{
			MinRequestInterval: pc.MinRequestInterval,
			CacheTTL:           pc.CacheTTL,
			RequestTimeout:     pc.RequestTimeout,
			RateLimitCooldown:  pc.RateLimitCooldown,
			BaseURL:            pc.BaseURL,
			APIKey:             pc.APIKey,
			HTTPClient:         nil,
			Logger:             log,
			Now:                nil,
		})
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidProvider, err, "failed to create %s provider", pc.Type)
		}

		providers = append(providers, p)
	}

	return &Client{
		orchestrator: NewOrchestrator(providers, log),
		config:       config,
		logger:       log,
		newWriter:    writer.NewDuckDBWriter,
	}, nil
}

// Orchestrator returns the provider rotation.
func (c *Client) Orchestrator() *Orchestrator {
	return c.orchestrator
}

// Export writes the enriched series and its signals to a Parquet file and
// returns the file path.
func (c *Client) Export(enriched types.EnrichedSeries, signals types.SignalSeries, now time.Time) (string, error) {
	if enriched.IsEmpty() {
		return "", errors.New(errors.ErrCodeEmptySeries, "nothing to export")
	}

	analysisWriter, err := c.setupWriter(enriched, now)
	if err != nil {
		return "", err
	}

	defer func() {
		if err := analysisWriter.Close(); err != nil {
			c.logger.Warn("Failed to close writer", zap.Error(err))
		}
	}()

	byTime := make(map[int64]types.SignalRow, len(signals.Rows))
	for _, row := range signals.Rows {
		byTime[row.Time.UnixNano()] = row
	}

	for _, row := range enriched.Rows() {
		signal, ok := byTime[row.Time.UnixNano()]
		if !ok {
			//nolint:exhaustruct // unmatched rows export as abstained HOLD
			signal = types.SignalRow{Time: row.Time, Final: types.SignalTypeHold, Abstained: true}
		}

		if err := analysisWriter.Write(enriched.Asset, row, signal); err != nil {
			return "", err
		}
	}

	outputPath, err := analysisWriter.Finalize()
	if err != nil {
		return "", err
	}

	c.logger.Info("Exported analysis",
		zap.String("asset", enriched.Asset),
		zap.String("path", outputPath),
		zap.Int("rows", enriched.Len()),
	)

	return outputPath, nil
}

// setupWriter initializes the writer for the configured output type.
func (c *Client) setupWriter(enriched types.EnrichedSeries, now time.Time) (writer.AnalysisWriter, error) {
	switch c.config.WriterType {
	case WriterDuckDB:
		// ASSET_TIMEFRAME_PROVIDER_TIMESTAMP.parquet
		outputFileName := fmt.Sprintf("%s_%s_%s_%s.parquet",
			strings.ToUpper(enriched.Asset),
			enriched.Timeframe,
			enriched.Provider,
			now.UTC().Format("20060102T150405"))
		outputPath := filepath.Join(c.config.DataPath, outputFileName)

		if err := os.MkdirAll(c.config.DataPath, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, "failed to create data path", err)
		}

		analysisWriter := c.newWriter(outputPath)
		if err := analysisWriter.Initialize(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to initialize writer at %s", outputPath)
		}

		return analysisWriter, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}
