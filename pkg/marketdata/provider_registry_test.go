package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
	"github.com/stretchr/testify/suite"
)

type ProviderRegistryTestSuite struct {
	suite.Suite
}

func TestProviderRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderRegistryTestSuite))
}

func (suite *ProviderRegistryTestSuite) TestGetSupportedProviders() {
	suite.Equal([]string{"binance", "coingecko", "polygon", "yahoo"}, GetSupportedProviders())
}

func (suite *ProviderRegistryTestSuite) TestRegistryMatchesFactory() {
	for _, p := range provider.SupportedProviders() {
		_, err := GetProviderInfo(string(p))
		suite.NoError(err, p)
	}
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_Polygon() {
	info, err := GetProviderInfo("polygon")

	suite.NoError(err)
	suite.Equal("Polygon.io", info.DisplayName)
	suite.True(info.RequiresAuth)
	suite.Equal("POLYGON_API_KEY", info.APIKeyEnv)
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_CoinGecko() {
	info, err := GetProviderInfo("coingecko")

	suite.NoError(err)
	suite.False(info.RequiresAuth)
	suite.Equal("COINGECKO_API_KEY", info.APIKeyEnv)
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_Unknown() {
	_, err := GetProviderInfo("kraken")

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func (suite *ProviderRegistryTestSuite) TestProviderInfoJSON() {
	info, err := GetProviderInfo("yahoo")
	suite.Require().NoError(err)

	data, err := json.Marshal(info)
	suite.Require().NoError(err)

	var decoded map[string]any
	suite.Require().NoError(json.Unmarshal(data, &decoded))
	suite.Equal("yahoo", decoded["name"])
	suite.NotContains(decoded, "apiKeyEnv")
}
