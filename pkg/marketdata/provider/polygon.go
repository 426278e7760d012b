package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

const (
	polygonMinInterval = 12 * time.Second
	polygonBars        = 500
)

type polygonSpan struct {
	multiplier int
	timespan   models.Timespan
}

var polygonSpans = map[types.Timeframe]polygonSpan{
	types.Timeframe1m:  {multiplier: 1, timespan: models.Minute},
	types.Timeframe5m:  {multiplier: 5, timespan: models.Minute},
	types.Timeframe15m: {multiplier: 15, timespan: models.Minute},
	types.Timeframe30m: {multiplier: 30, timespan: models.Minute},
	types.Timeframe1h:  {multiplier: 1, timespan: models.Hour},
	types.Timeframe4h:  {multiplier: 4, timespan: models.Hour},
	types.Timeframe1d:  {multiplier: 1, timespan: models.Day},
	types.Timeframe7d:  {multiplier: 1, timespan: models.Week},
}

// listAggsFunc drains an aggregates query.
type listAggsFunc func(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error)

// PolygonProvider reads crypto aggregates through the Polygon SDK.
type PolygonProvider struct {
	*providerCore

	listAggs listAggsFunc
}

// NewPolygonProvider fails without an API key.
func NewPolygonProvider(opts Options) (*PolygonProvider, error) {
	if opts.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "polygon provider requires an API key")
	}

	var client *polygon.Client
	if opts.HTTPClient != nil {
		client = polygon.NewWithClient(opts.APIKey, opts.HTTPClient)
	} else {
		client = polygon.New(opts.APIKey)
	}

	return newPolygonProvider(opts, func(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error) {
		iter := client.ListAggs(ctx, params)

		aggs := make([]models.Agg, 0, polygonBars)
		for iter.Next() {
			aggs = append(aggs, iter.Item())
		}

		return aggs, iter.Err()
	}), nil
}

func newPolygonProvider(opts Options, listAggs listAggsFunc) *PolygonProvider {
	p := &PolygonProvider{
		providerCore: nil,
		listAggs:     listAggs,
	}

	p.providerCore = newProviderCore(string(ProviderPolygon), []types.Timeframe{
		types.Timeframe1m,
		types.Timeframe5m,
		types.Timeframe15m,
		types.Timeframe30m,
		types.Timeframe1h,
		types.Timeframe4h,
		types.Timeframe1d,
		types.Timeframe7d,
	}, polygonMinInterval, opts, p.fetchCandles)

	return p
}

// polygonTicker maps an asset to a crypto ticker, e.g. btc -> X:BTCUSD.
func polygonTicker(asset string) string {
	return "X:" + strings.ToUpper(asset) + "USD"
}

func (p *PolygonProvider) fetchCandles(ctx context.Context, asset string, timeframe types.Timeframe) ([]types.Candle, error) {
	span, ok := polygonSpans[timeframe]
	if !ok {
		span = polygonSpans[types.Timeframe1h]
	}

	to := p.now().UTC()
	lookback := time.Duration(polygonBars*span.multiplier) * polygonUnit(span.timespan)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     polygonTicker(asset),
		Multiplier: span.multiplier,
		Timespan:   span.timespan,
		From:       models.Millis(to.Add(-lookback)),
		To:         models.Millis(to),
	}.WithLimit(polygonBars)

	aggs, err := p.listAggs(ctx, params)
	if err != nil {
		return nil, classifyPolygonError(err)
	}

	candles := make([]types.Candle, 0, len(aggs))
	for _, agg := range aggs {
		candles = append(candles, types.Candle{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	return candles, nil
}

func polygonUnit(timespan models.Timespan) time.Duration {
	switch timespan {
	case models.Minute:
		return time.Minute
	case models.Hour:
		return time.Hour
	case models.Week:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func classifyPolygonError(err error) error {
	var errResp *models.ErrorResponse
	if errors.As(err, &errResp) {
		if errResp.StatusCode == http.StatusTooManyRequests {
			return errors.Wrap(errors.ErrCodeUpstreamRateLimited, "polygon rate limit", err)
		}

		return errors.Wrap(errors.ErrCodeUpstreamStatus, "polygon api error", err)
	}

	return classifyTransportError(err)
}
