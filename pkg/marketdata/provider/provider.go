package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderCoinGecko ProviderType = "coingecko"
	ProviderYahoo     ProviderType = "yahoo"
	ProviderBinance   ProviderType = "binance"
	ProviderPolygon   ProviderType = "polygon"
)

const (
	DefaultCacheTTL          = 5 * time.Minute
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRateLimitCooldown = 60 * time.Second
)

// DataProvider fetches candle series for one upstream. Every failure degrades
// to an empty series; Fetch never returns an error.
type DataProvider interface {
	// Name returns the provider name used in logs and series metadata
	Name() string
	// SupportedTimeframes returns the timeframe tokens this upstream can serve
	SupportedTimeframes() []types.Timeframe
	// IsRateLimited reports whether the minimum request interval has not yet
	// elapsed or the upstream recently rejected a request for quota reasons
	IsRateLimited() bool
	// Fetch returns the series for (asset, timeframe), served from cache when fresh
	// or when rate limited.
	Fetch(ctx context.Context, asset string, timeframe types.Timeframe) types.Series
	// State returns a snapshot of the limiter and cache
	State() types.ProviderState
}

// AssetLister is implemented by providers with a fixed asset table.
type AssetLister interface {
	SupportedAssets() []string
}

// Options configures a provider. Zero durations take the provider defaults.
type Options struct {
	MinRequestInterval time.Duration
	CacheTTL           time.Duration
	RequestTimeout     time.Duration
	RateLimitCooldown  time.Duration
	// BaseURL overrides the upstream endpoint
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *logger.Logger
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// NewDataProvider creates a provider based on the provider type.
func NewDataProvider(providerType ProviderType, opts Options) (DataProvider, error) {
	switch providerType {
	case ProviderCoinGecko:
		return NewCoinGeckoProvider(opts), nil
	case ProviderYahoo:
		return NewYahooProvider(opts), nil
	case ProviderBinance:
		return NewBinanceProvider(opts), nil
	case ProviderPolygon:
		p, err := NewPolygonProvider(opts)
		if err != nil {
			return nil, err
		}

		return p, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

// SupportedProviders lists the provider types NewDataProvider accepts.
func SupportedProviders() []ProviderType {
	return []ProviderType{ProviderCoinGecko, ProviderYahoo, ProviderBinance, ProviderPolygon}
}
