package marketdata

import (
	"sort"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
	// APIKeyEnv is the environment variable holding the key, if any
	APIKeyEnv string `json:"apiKeyEnv,omitempty"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderCoinGecko: {
		Name:         string(provider.ProviderCoinGecko),
		DisplayName:  "CoinGecko",
		Description:  "Crypto market charts resampled to OHLC buckets; pro API key optional",
		RequiresAuth: false,
		APIKeyEnv:    "COINGECKO_API_KEY",
	},
	provider.ProviderYahoo: {
		Name:         string(provider.ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Public v8 chart endpoint with native OHLCV candles",
		RequiresAuth: false,
		APIKeyEnv:    "",
	},
	provider.ProviderBinance: {
		Name:         string(provider.ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange klines for USDT pairs",
		RequiresAuth: false,
		APIKeyEnv:    "",
	},
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Crypto aggregates for X:<ASSET>USD tickers",
		RequiresAuth: true,
		APIKeyEnv:    "POLYGON_API_KEY",
	},
}

// GetSupportedProviders returns all supported provider names, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}
