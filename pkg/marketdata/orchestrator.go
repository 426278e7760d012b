package marketdata

import (
	"context"
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
	"go.uber.org/zap"
)

// Orchestrator fetches series from an ordered list of providers, skipping
// rate-limited ones and failing over on empty results.
type Orchestrator struct {
	providers []provider.DataProvider
	mu        sync.Mutex
	// index is the provider tried first on the next call
	index  int
	logger *logger.Logger
}

// NewOrchestrator creates an orchestrator over providers in rotation order.
func NewOrchestrator(providers []provider.DataProvider, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Orchestrator{
		providers: providers,
		mu:        sync.Mutex{},
		index:     0,
		logger:    log.Named("orchestrator"),
	}
}

// Rotate returns the provider index tried on the given attempt of a pass that
// started at start.
func Rotate(start, count, attempt int) int {
	if count <= 0 {
		return 0
	}

	return ((start+attempt)%count + count) % count
}

// GetHistoricalData returns the first non-empty series from one pass over the
// providers. An empty series means every provider was rate limited or failed.
func (o *Orchestrator) GetHistoricalData(ctx context.Context, asset string, timeframe types.Timeframe) types.Series {
	count := len(o.providers)
	if count == 0 {
		o.logger.Error("No market data providers configured")

		return types.EmptySeries(asset, timeframe)
	}

	start := o.currentIndex()

	for attempt := 0; attempt < count; attempt++ {
		if ctx.Err() != nil {
			o.logger.Warn("Fetch cancelled", zap.String("asset", asset), zap.Error(ctx.Err()))

			break
		}

		idx := Rotate(start, count, attempt)
		p := o.providers[idx]

		if p.IsRateLimited() {
			o.logger.Warn("Provider is rate limited, trying next provider",
				zap.String("provider", p.Name()),
			)

			continue
		}

		series := p.Fetch(ctx, asset, timeframe)
		if !series.IsEmpty() {
			o.logger.Info("Data fetched successfully",
				zap.String("provider", p.Name()),
				zap.String("asset", asset),
				zap.String("timeframe", timeframe.String()),
				zap.Int("candles", series.Len()),
			)
			o.setIndex(idx)

			return series
		}

		o.logger.Warn("Provider returned no data, trying next provider",
			zap.String("provider", p.Name()),
			zap.String("asset", asset),
		)
	}

	o.setIndex(Rotate(start, count, 1))
	o.logger.Error("Failed to fetch data from all providers",
		zap.String("asset", asset),
		zap.String("timeframe", timeframe.String()),
	)

	return types.EmptySeries(asset, timeframe)
}

// SupportedTimeframes returns the timeframes every provider supports, sorted lexicographically.
func (o *Orchestrator) SupportedTimeframes() []types.Timeframe {
	if len(o.providers) == 0 {
		return []types.Timeframe{}
	}

	common := make(map[types.Timeframe]struct{})
	for _, tf := range o.providers[0].SupportedTimeframes() {
		common[tf] = struct{}{}
	}

	for _, p := range o.providers[1:] {
		supported := make(map[types.Timeframe]struct{})
		for _, tf := range p.SupportedTimeframes() {
			supported[tf] = struct{}{}
		}

		for tf := range common {
			if _, ok := supported[tf]; !ok {
				delete(common, tf)
			}
		}
	}

	result := make([]types.Timeframe, 0, len(common))
	for tf := range common {
		result = append(result, tf)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result
}

// Providers returns the providers in rotation order.
func (o *Orchestrator) Providers() []provider.DataProvider {
	out := make([]provider.DataProvider, len(o.providers))
	copy(out, o.providers)

	return out
}

// CurrentIndex returns the index of the provider tried first on the next call.
func (o *Orchestrator) CurrentIndex() int {
	return o.currentIndex()
}

func (o *Orchestrator) currentIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.index
}

func (o *Orchestrator) setIndex(idx int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.index = idx
}
