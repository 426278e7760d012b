package provider

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// fetchFunc performs one upstream call and maps the payload to candles.
type fetchFunc func(ctx context.Context, asset string, timeframe types.Timeframe) ([]types.Candle, error)

// providerCore owns the per-provider limiter and cache. The mutex is held across
// check, upstream call and update so concurrent callers cannot both slip past
// the limiter.
type providerCore struct {
	name       string
	timeframes []types.Timeframe
	cacheTTL   time.Duration
	timeout    time.Duration
	cooldown   time.Duration
	minGap     time.Duration
	now        func() time.Time
	logger     *logger.Logger
	fetch      fetchFunc

	mu            sync.Mutex
	limiter       *rate.Limiter
	lastRequest   time.Time
	rateLimitedAt time.Time
	cache         map[types.CacheKey]types.CacheEntry
}

func newProviderCore(name string, timeframes []types.Timeframe, defaultGap time.Duration, opts Options, fetch fetchFunc) *providerCore {
	minGap := opts.MinRequestInterval
	if minGap <= 0 {
		minGap = defaultGap
	}

	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	cooldown := opts.RateLimitCooldown
	if cooldown <= 0 {
		cooldown = DefaultRateLimitCooldown
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	var limiter *rate.Limiter
	if minGap > 0 {
		limiter = rate.NewLimiter(rate.Every(minGap), 1)
	}

	return &providerCore{
		name:          name,
		timeframes:    timeframes,
		cacheTTL:      cacheTTL,
		timeout:       timeout,
		cooldown:      cooldown,
		minGap:        minGap,
		now:           now,
		logger:        log.Named(name),
		fetch:         fetch,
		mu:            sync.Mutex{},
		limiter:       limiter,
		lastRequest:   time.Time{},
		rateLimitedAt: time.Time{},
		cache:         make(map[types.CacheKey]types.CacheEntry),
	}
}

func (p *providerCore) Name() string {
	return p.name
}

func (p *providerCore) SupportedTimeframes() []types.Timeframe {
	return slices.Clone(p.timeframes)
}

func (p *providerCore) IsRateLimited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rateLimitedLocked(p.now())
}

// rateLimitedLocked expires the sticky upstream flag after the cooldown.
func (p *providerCore) rateLimitedLocked(now time.Time) bool {
	if !p.rateLimitedAt.IsZero() {
		if now.Sub(p.rateLimitedAt) < p.cooldown {
			return true
		}

		p.rateLimitedAt = time.Time{}
	}

	return p.limiter != nil && p.limiter.TokensAt(now) < 1
}

func (p *providerCore) Fetch(ctx context.Context, asset string, timeframe types.Timeframe) types.Series {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := types.CacheKey{Asset: asset, Timeframe: timeframe}
	now := p.now()
	cached, hasCache := p.cache[key]

	if hasCache && now.Sub(cached.FetchedAt) < p.cacheTTL {
		p.logger.Debug("Serving cached series", zap.String("asset", asset), zap.String("timeframe", timeframe.String()))

		return cached.Series
	}

	if p.rateLimitedLocked(now) {
		p.logger.Warn("Provider rate limited, serving cached series",
			zap.String("asset", asset),
			zap.String("timeframe", timeframe.String()),
			zap.Bool("cached", hasCache),
		)

		return p.fallbackLocked(cached, hasCache, asset, timeframe)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	candles, err := p.fetch(callCtx, asset, timeframe)
	done := p.now()

	if err != nil {
		if errors.IsRateLimited(err) {
			p.rateLimitedAt = done
			p.logger.Warn("Upstream rejected request for quota", zap.String("asset", asset), zap.Error(err))

			return p.fallbackLocked(cached, hasCache, asset, timeframe)
		}

		p.logger.Warn("Upstream fetch failed",
			zap.String("asset", asset),
			zap.String("timeframe", timeframe.String()),
			zap.Error(err),
		)

		return types.EmptySeries(asset, timeframe)
	}

	if len(candles) == 0 {
		p.logger.Warn("Upstream returned no candles", zap.String("asset", asset), zap.String("timeframe", timeframe.String()))

		return types.EmptySeries(asset, timeframe)
	}

	series := types.NewSeries(asset, timeframe, p.name, candles)

	p.lastRequest = done
	p.rateLimitedAt = time.Time{}

	if p.limiter != nil {
		p.limiter.AllowN(done, 1)
	}

	p.cache[key] = types.CacheEntry{Series: series, FetchedAt: done}

	p.logger.Debug("Fetched series",
		zap.String("asset", asset),
		zap.String("timeframe", timeframe.String()),
		zap.Int("candles", series.Len()),
	)

	return series
}

func (p *providerCore) fallbackLocked(cached types.CacheEntry, ok bool, asset string, timeframe types.Timeframe) types.Series {
	if ok {
		return cached.Series
	}

	return types.EmptySeries(asset, timeframe)
}

func (p *providerCore) State() types.ProviderState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return types.ProviderState{
		Name:               p.name,
		MinRequestInterval: p.minGap,
		LastRequestTime:    p.lastRequest,
		RateLimited:        !p.rateLimitedAt.IsZero(),
		Cache:              maps.Clone(p.cache),
	}
}
