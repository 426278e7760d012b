package provider

import (
	"context"
	"strconv"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

const (
	binanceMinInterval = time.Second
	binanceKlineLimit  = 500
)

// Binance API codes that signal a request-weight or order-rate violation.
const (
	binanceCodeTooManyRequests = -1003
	binanceCodeTooManyOrders   = -1015
)

var binanceIntervals = map[types.Timeframe]string{
	types.Timeframe1m:  "1m",
	types.Timeframe3m:  "3m",
	types.Timeframe5m:  "5m",
	types.Timeframe15m: "15m",
	types.Timeframe30m: "30m",
	types.Timeframe1h:  "1h",
	types.Timeframe4h:  "4h",
	types.Timeframe1d:  "1d",
	types.Timeframe7d:  "1w",
}

// BinanceProvider reads spot klines through the go-binance SDK.
type BinanceProvider struct {
	*providerCore

	client *binance.Client
}

func NewBinanceProvider(opts Options) *BinanceProvider {
	client := binance.NewClient(opts.APIKey, "")
	if opts.BaseURL != "" {
		client.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	if opts.HTTPClient != nil {
		client.HTTPClient = opts.HTTPClient
	}

	p := &BinanceProvider{
		providerCore: nil,
		client:       client,
	}

	p.providerCore = newProviderCore(string(ProviderBinance), []types.Timeframe{
		types.Timeframe1m,
		types.Timeframe3m,
		types.Timeframe5m,
		types.Timeframe15m,
		types.Timeframe30m,
		types.Timeframe1h,
		types.Timeframe4h,
		types.Timeframe1d,
		types.Timeframe7d,
	}, binanceMinInterval, opts, p.fetchCandles)

	return p
}

// binanceSymbol maps an asset to a USDT spot pair, e.g. btc -> BTCUSDT.
func binanceSymbol(asset string) string {
	return strings.ToUpper(asset) + "USDT"
}

func (p *BinanceProvider) fetchCandles(ctx context.Context, asset string, timeframe types.Timeframe) ([]types.Candle, error) {
	interval, ok := binanceIntervals[timeframe]
	if !ok {
		interval = binanceIntervals[types.Timeframe1h]
	}

	klines, err := p.client.NewKlinesService().
		Symbol(binanceSymbol(asset)).
		Interval(interval).
		Limit(binanceKlineLimit).
		Do(ctx)
	if err != nil {
		return nil, classifyBinanceError(err)
	}

	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		candle, err := binanceKlineToCandle(k)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func binanceKlineToCandle(k *binance.Kline) (types.Candle, error) {
	values := make([]float64, 5)

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Candle{}, errors.Wrapf(errors.ErrCodeUpstreamParseFailed, err, "invalid kline value %q", raw)
		}

		values[i] = v
	}

	return types.Candle{
		// OpenTime marks the bar, matching the other providers' left-edge buckets
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

func classifyBinanceError(err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case binanceCodeTooManyRequests, binanceCodeTooManyOrders:
			return errors.Wrap(errors.ErrCodeUpstreamRateLimited, "binance rate limit", err)
		default:
			return errors.Wrap(errors.ErrCodeUpstreamStatus, "binance api error", err)
		}
	}

	return classifyTransportError(err)
}

