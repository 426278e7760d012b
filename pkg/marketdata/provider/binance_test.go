package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BinanceTestSuite struct {
	suite.Suite
	server  *httptest.Server
	status  int
	body    string
	lastReq *http.Request
}

func TestBinanceSuite(t *testing.T) {
	suite.Run(t, new(BinanceTestSuite))
}

func (suite *BinanceTestSuite) SetupTest() {
	suite.status = http.StatusOK
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.lastReq = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(suite.status)
		_, _ = w.Write([]byte(suite.body))
	}))
}

func (suite *BinanceTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *BinanceTestSuite) TestFetchKlines() {
	suite.body = `[
		[1704067200000,"100.0","110.0","95.0","105.0","12.5",1704070799999,"1300.0",42,"6.0","630.0","0"],
		[1704070800000,"105.0","108.0","101.0","102.0","8.0",1704074399999,"820.0",30,"4.0","410.0","0"]
	]`

	p := NewBinanceProvider(Options{BaseURL: suite.server.URL})
	series := p.Fetch(context.Background(), "btc", types.Timeframe1h)

	suite.Equal("/api/v3/klines", suite.lastReq.URL.Path)
	suite.Equal("BTCUSDT", suite.lastReq.URL.Query().Get("symbol"))
	suite.Equal("1h", suite.lastReq.URL.Query().Get("interval"))
	suite.Equal("500", suite.lastReq.URL.Query().Get("limit"))

	suite.Require().Equal(2, series.Len())
	suite.Equal(time.UnixMilli(1704067200000).UTC(), series.At(0).Time)
	suite.Equal(110.0, series.At(0).High)
	suite.Equal(12.5, series.At(0).Volume)
	suite.Equal("binance", series.Provider)
}

func (suite *BinanceTestSuite) TestWeeklyInterval() {
	suite.body = `[]`

	p := NewBinanceProvider(Options{BaseURL: suite.server.URL})

	suite.True(p.Fetch(context.Background(), "eth", types.Timeframe7d).IsEmpty())
	suite.Equal("1w", suite.lastReq.URL.Query().Get("interval"))
	suite.Equal("ETHUSDT", suite.lastReq.URL.Query().Get("symbol"))
}

func (suite *BinanceTestSuite) TestServerErrorYieldsEmptySeries() {
	suite.status = http.StatusTooManyRequests
	suite.body = `{"code":-1003,"msg":"Too many requests"}`

	p := NewBinanceProvider(Options{BaseURL: suite.server.URL})

	suite.True(p.Fetch(context.Background(), "btc", types.Timeframe1h).IsEmpty())
}

func (suite *BinanceTestSuite) TestClassifyBinanceError() {
	err := classifyBinanceError(&common.APIError{Code: -1003, Message: "Too many requests"})
	suite.True(errors.IsRateLimited(err))

	err = classifyBinanceError(&common.APIError{Code: -1121, Message: "Invalid symbol."})
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamStatus))

	err = classifyBinanceError(context.DeadlineExceeded)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamTimeout))
}

func (suite *BinanceTestSuite) TestInvalidKlineValue() {
	_, err := binanceKlineToCandle(&binance.Kline{Open: "x", High: "1", Low: "1", Close: "1", Volume: "1"})

	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamParseFailed))
}
