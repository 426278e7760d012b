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
	coinGeckoBaseURL     = "https://api.coingecko.com/api/v3"
	coinGeckoMinInterval = 30 * time.Second
)

var coinGeckoIDs = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"ton":   "the-open-network",
	"ada":   "cardano",
	"dot":   "polkadot",
	"link":  "chainlink",
	"matic": "matic-network",
	"doge":  "dogecoin",
	"shib":  "shiba-inu",
	"avax":  "avalanche-2",
	"uni":   "uniswap",
	"xrp":   "ripple",
}

type coinGeckoWindow struct {
	days     string
	interval string
}

var coinGeckoWindows = map[types.Timeframe]coinGeckoWindow{
	types.Timeframe1m:  {days: "1", interval: "minutely"},
	types.Timeframe5m:  {days: "1", interval: "minutely"},
	types.Timeframe15m: {days: "1", interval: "minutely"},
	types.Timeframe30m: {days: "1", interval: "minutely"},
	types.Timeframe1h:  {days: "1", interval: "hourly"},
	types.Timeframe4h:  {days: "7", interval: "hourly"},
	types.Timeframe1d:  {days: "30", interval: "daily"},
	types.Timeframe7d:  {days: "90", interval: "daily"},
	types.Timeframe30d: {days: "365", interval: "daily"},
}

var coinGeckoDefaultWindow = coinGeckoWindow{days: "30", interval: "daily"}

// CoinGeckoProvider reads the market_chart endpoint, which returns bare price
// points. Candles are resampled from those points and volume is synthesized.
type CoinGeckoProvider struct {
	*providerCore

	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCoinGeckoProvider(opts Options) *CoinGeckoProvider {
	p := &CoinGeckoProvider{
		providerCore: nil,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		apiKey:       opts.APIKey,
		client:       httpClientOrDefault(opts.HTTPClient),
	}

	if p.baseURL == "" {
		p.baseURL = coinGeckoBaseURL
	}

	p.providerCore = newProviderCore(string(ProviderCoinGecko), []types.Timeframe{
		types.Timeframe1m,
		types.Timeframe5m,
		types.Timeframe15m,
		types.Timeframe30m,
		types.Timeframe1h,
		types.Timeframe4h,
		types.Timeframe1d,
		types.Timeframe7d,
		types.Timeframe30d,
	}, coinGeckoMinInterval, opts, p.fetchCandles)

	return p
}

// SupportedAssets returns the assets with a known coin id.
func (p *CoinGeckoProvider) SupportedAssets() []string {
	assets := make([]string, 0, len(coinGeckoIDs))
	for asset := range coinGeckoIDs {
		assets = append(assets, asset)
	}

	slices.Sort(assets)

	return assets
}

// coinGeckoID maps an asset to a coin id. Unknown assets are passed through lowercased.
func coinGeckoID(asset string) string {
	asset = strings.ToLower(asset)
	if id, ok := coinGeckoIDs[asset]; ok {
		return id
	}

	return asset
}

func (p *CoinGeckoProvider) fetchCandles(ctx context.Context, asset string, timeframe types.Timeframe) ([]types.Candle, error) {
	window, ok := coinGeckoWindows[timeframe]
	if !ok {
		window = coinGeckoDefaultWindow
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", window.days)
	query.Set("interval", window.interval)

	headers := map[string]string{}
	if p.apiKey != "" {
		headers["x-cg-pro-api-key"] = p.apiKey
	}

	body, err := getBody(ctx, p.client, p.baseURL+"/coins/"+url.PathEscape(coinGeckoID(asset))+"/market_chart", query, headers)
	if err != nil {
		return nil, err
	}

	return parseCoinGeckoMarketChart(body, timeframe)
}

func parseCoinGeckoMarketChart(body []byte, timeframe types.Timeframe) ([]types.Candle, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New(errors.ErrCodeUpstreamParseFailed, "coingecko returned invalid JSON")
	}

	prices := gjson.GetBytes(body, "prices")
	if !prices.IsArray() {
		return nil, errors.New(errors.ErrCodeUpstreamParseFailed, "coingecko payload has no prices array")
	}

	points := make([]pricePoint, 0, len(prices.Array()))

	for _, item := range prices.Array() {
		pair := item.Array()
		if len(pair) < 2 || pair[0].Type != gjson.Number || pair[1].Type != gjson.Number {
			return nil, errors.Newf(errors.ErrCodeUpstreamParseFailed, "malformed price point %s", item.Raw)
		}

		points = append(points, pricePoint{
			time:  time.UnixMilli(pair[0].Int()).UTC(),
			price: pair[1].Float(),
		})
	}

	var candles []types.Candle

	switch timeframe {
	case types.Timeframe7d, types.Timeframe30d:
		candles = make([]types.Candle, 0, len(points))
		for _, pt := range points {
			candles = append(candles, types.Candle{Time: pt.time, Open: pt.price, High: pt.price, Low: pt.price, Close: pt.price})
		}
	default:
		width := timeframe.Duration()
		if width == 0 {
			width = types.Timeframe1d.Duration()
		}

		candles = resamplePrices(points, width)
	}

	synthesizeVolume(candles)

	return candles, nil
}
