package provider

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	yahooBaseURL     = "https://query1.finance.yahoo.com"
	yahooMinInterval = 5 * time.Second
)

var yahooSymbols = map[string]string{
	"btc":   "BTC-USD",
	"eth":   "ETH-USD",
	"sol":   "SOL-USD",
	"ton":   "TONCOIN-USD",
	"ada":   "ADA-USD",
	"dot":   "DOT-USD",
	"link":  "LINK-USD",
	"matic": "MATIC-USD",
	"doge":  "DOGE-USD",
	"shib":  "SHIB-USD",
	"avax":  "AVAX-USD",
	"uni":   "UNI-USD",
	"xrp":   "XRP-USD",
}

type yahooWindow struct {
	interval string
	period   string
	// resample is set when the upstream has no native interval for the timeframe
	resample time.Duration
}

var yahooWindows = map[types.Timeframe]yahooWindow{
	types.Timeframe1m:  {interval: "1m", period: "1d"},
	types.Timeframe3m:  {interval: "1m", period: "1d", resample: 3 * time.Minute},
	types.Timeframe5m:  {interval: "5m", period: "1d"},
	types.Timeframe15m: {interval: "15m", period: "1d"},
	types.Timeframe30m: {interval: "30m", period: "5d"},
	types.Timeframe1h:  {interval: "1h", period: "7d"},
	types.Timeframe1d:  {interval: "1d", period: "60d"},
}

var yahooDefaultWindow = yahooWindow{interval: "1h", period: "7d"}

// YahooProvider reads the v8 chart endpoint.
type YahooProvider struct {
	*providerCore

	baseURL string
	client  *http.Client
}

func NewYahooProvider(opts Options) *YahooProvider {
	p := &YahooProvider{
		providerCore: nil,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		client:       httpClientOrDefault(opts.HTTPClient),
	}

	if p.baseURL == "" {
		p.baseURL = yahooBaseURL
	}

	p.providerCore = newProviderCore(string(ProviderYahoo), []types.Timeframe{
		types.Timeframe1m,
		types.Timeframe3m,
		types.Timeframe5m,
		types.Timeframe15m,
		types.Timeframe30m,
		types.Timeframe1h,
		types.Timeframe1d,
	}, yahooMinInterval, opts, p.fetchCandles)

	return p
}

func (p *YahooProvider) SupportedAssets() []string {
	assets := make([]string, 0, len(yahooSymbols))
	for asset := range yahooSymbols {
		assets = append(assets, asset)
	}

	slices.Sort(assets)

	return assets
}

// yahooSymbol maps an asset to a ticker. Unknown assets become "<ASSET>-USD".
func yahooSymbol(asset string) string {
	if symbol, ok := yahooSymbols[strings.ToLower(asset)]; ok {
		return symbol
	}

	return strings.ToUpper(asset) + "-USD"
}

func (p *YahooProvider) fetchCandles(ctx context.Context, asset string, timeframe types.Timeframe) ([]types.Candle, error) {
	window, ok := yahooWindows[timeframe]
	if !ok {
		window = yahooDefaultWindow
	}

	query := url.Values{}
	query.Set("interval", window.interval)
	query.Set("range", window.period)

	body, err := getBody(ctx, p.client, p.baseURL+"/v8/finance/chart/"+url.PathEscape(yahooSymbol(asset)), query, nil)
	if err != nil {
		return nil, err
	}

	candles, err := parseYahooChart(body)
	if err != nil {
		return nil, err
	}

	if window.resample > 0 {
		candles = resampleCandles(candles, window.resample)
	}

	return candles, nil
}

func parseYahooChart(body []byte) ([]types.Candle, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New(errors.ErrCodeUpstreamParseFailed, "yahoo returned invalid JSON")
	}

	chart := gjson.ParseBytes(body).Get("chart")
	if description := chart.Get("error.description"); description.Exists() {
		return nil, errors.Newf(errors.ErrCodeUpstreamStatus, "yahoo chart error: %s", description.String())
	}

	result := chart.Get("result.0")
	if !result.Exists() {
		return nil, errors.New(errors.ErrCodeUpstreamParseFailed, "yahoo payload has no chart result")
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	if len(closes) != len(timestamps) {
		return nil, errors.Newf(errors.ErrCodeUpstreamParseFailed,
			"yahoo payload has %d timestamps and %d closes", len(timestamps), len(closes))
	}

	candles := make([]types.Candle, 0, len(timestamps))

	for i, ts := range timestamps {
		if closes[i].Type != gjson.Number {
			continue
		}

		closePrice := closes[i].Float()
		candles = append(candles, types.Candle{
			Time:   time.Unix(ts.Int(), 0).UTC(),
			Open:   valueOr(opens, i, closePrice),
			High:   valueOr(highs, i, closePrice),
			Low:    valueOr(lows, i, closePrice),
			Close:  closePrice,
			Volume: valueOr(volumes, i, 0),
		})
	}

	return candles, nil
}

func valueOr(values []gjson.Result, i int, fallback float64) float64 {
	if i >= len(values) || values[i].Type != gjson.Number {
		return fallback
	}

	return values[i].Float()
}
