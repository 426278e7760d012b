// Package config loads the YAML configuration of the analysis tool.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-insight/internal/backtest"
	"github.com/rxtech-lab/argo-insight/internal/indicator"
	"github.com/rxtech-lab/argo-insight/internal/prediction"
	"github.com/rxtech-lab/argo-insight/internal/signal"
	"github.com/rxtech-lab/argo-insight/internal/version"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata/provider"
	"gopkg.in/yaml.v3"
)

type IndicatorConfig struct {
	RSISmoothing indicator.RSISmoothing `yaml:"rsi_smoothing" json:"rsi_smoothing" validate:"oneof=simple wilder" jsonschema:"title=RSI Smoothing,enum=simple,enum=wilder,default=simple"`
}

type SignalConfig struct {
	UndefinedPolicy signal.UndefinedPolicy `yaml:"undefined_policy" json:"undefined_policy" validate:"oneof=abstain neutral" jsonschema:"title=Undefined Policy,description=How rows with undefined indicators vote,enum=abstain,enum=neutral,default=abstain"`
}

type BacktestConfig struct {
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital in USD,minimum=0,default=10000"`
}

type LearnerConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"title=Enabled,default=true"`
	Interval   time.Duration `yaml:"interval" json:"interval" validate:"gt=0" jsonschema:"title=Interval,description=Time between training rounds"`
	MinBatch   int           `yaml:"min_batch" json:"min_batch" validate:"gt=0" jsonschema:"title=Minimum Batch,minimum=1,default=32"`
	Capacity   int           `yaml:"capacity" json:"capacity" validate:"gtefield=MinBatch" jsonschema:"title=Buffer Capacity,minimum=1,default=1000"`
	WindowSize int           `yaml:"window_size" json:"window_size" validate:"gt=0" jsonschema:"title=Window Size,minimum=1,default=30"`
}

// Config is the root configuration.
type Config struct {
	Version   string                      `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Tool version the file was written for"`
	LogLevel  string                      `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	DataPath  string                      `yaml:"data_path" json:"data_path" validate:"required" jsonschema:"title=Data Path,description=Directory for parquet exports,default=data"`
	Providers []marketdata.ProviderConfig `yaml:"providers" json:"providers" validate:"required,min=1,dive" jsonschema:"title=Providers,description=Ordered provider rotation"`
	Indicator IndicatorConfig             `yaml:"indicator" json:"indicator"`
	Signal    SignalConfig                `yaml:"signal" json:"signal"`
	Backtest  BacktestConfig              `yaml:"backtest" json:"backtest"`
	Learner   LearnerConfig               `yaml:"learner" json:"learner"`
}

// Default returns the configuration used when no file is given: CoinGecko then Yahoo.
//
//nolint:exhaustruct // zero provider fields take the provider defaults
func Default() Config {
	return Config{
		Version:  "",
		LogLevel: "info",
		DataPath: "data",
		Providers: []marketdata.ProviderConfig{
			{Type: provider.ProviderCoinGecko},
			{Type: provider.ProviderYahoo},
		},
		Indicator: IndicatorConfig{RSISmoothing: indicator.RSISmoothingSimple},
		Signal:    SignalConfig{UndefinedPolicy: signal.UndefinedPolicyAbstain},
		Backtest:  BacktestConfig{InitialCapital: backtest.DefaultInitialCapital},
		Learner: LearnerConfig{
			Enabled:    true,
			Interval:   prediction.DefaultLearnerInterval,
			MinBatch:   prediction.DefaultMinBatch,
			Capacity:   prediction.DefaultCapacity,
			WindowSize: prediction.DefaultWindowSize,
		},
	}
}

// Load reads and validates the file at path. API keys come from getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data, getenv)
}

// Parse decodes YAML over the defaults, applies environment secrets and validates.
func Parse(data []byte, getenv func(string) string) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.DataPath == "" {
		c.DataPath = defaults.DataPath
	}

	if len(c.Providers) == 0 {
		c.Providers = defaults.Providers
	}

	if c.Indicator.RSISmoothing == "" {
		c.Indicator.RSISmoothing = defaults.Indicator.RSISmoothing
	}

	if c.Signal.UndefinedPolicy == "" {
		c.Signal.UndefinedPolicy = defaults.Signal.UndefinedPolicy
	}

	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = defaults.Backtest.InitialCapital
	}

	if c.Learner.Interval == 0 {
		c.Learner.Interval = defaults.Learner.Interval
	}

	if c.Learner.MinBatch == 0 {
		c.Learner.MinBatch = defaults.Learner.MinBatch
	}

	if c.Learner.Capacity == 0 {
		c.Learner.Capacity = defaults.Learner.Capacity
	}

	if c.Learner.WindowSize == 0 {
		c.Learner.WindowSize = defaults.Learner.WindowSize
	}
}

// ApplyEnv fills provider API keys from the environment variable each provider documents.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}

	for i := range c.Providers {
		info, err := marketdata.GetProviderInfo(string(c.Providers[i].Type))
		if err != nil || info.APIKeyEnv == "" {
			continue
		}

		if key := getenv(info.APIKeyEnv); key != "" {
			c.Providers[i].APIKey = key
		}
	}
}

// Validate checks field constraints and the config version.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if c.Version != "" {
		if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
			return err
		}
	}

	return nil
}

// ClientConfig returns the market data client settings.
func (c Config) ClientConfig() marketdata.ClientConfig {
	return marketdata.ClientConfig{
		Providers:  c.Providers,
		WriterType: marketdata.WriterDuckDB,
		DataPath:   c.DataPath,
	}
}

// LearnerOptions returns the incremental learner settings.
func (c Config) LearnerOptions() prediction.LearnerConfig {
	return prediction.LearnerConfig{
		Interval: c.Learner.Interval,
		MinBatch: c.Learner.MinBatch,
		Capacity: c.Learner.Capacity,
	}
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				//nolint:exhaustruct
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
					Description: "Go duration, e.g. 30s or 5m",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-insight-config"
	schema.Description = "Configuration schema for the argo-insight analyzer"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal schema", err)
	}

	return string(schemaBytes), nil
}

// SampleYAML renders cfg as YAML with a schema pointer header.
func SampleYAML(cfg Config, schemaName string) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal sample config", err)
	}

	return append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), body...), nil
}
