package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BCPREDICT_HTTP_ADDR.
const EnvPrefix = "BCPREDICT"

// Config is the runtime configuration of the demo server.
type Config struct {
	Data  DataConfig  `mapstructure:"data" yaml:"data"`
	HTTP  HTTPConfig  `mapstructure:"http" yaml:"http"`
	Model ModelConfig `mapstructure:"model" yaml:"model"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
}

type DataConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // CSV with a diagnosis or class column
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type ModelConfig struct {
	Seed        int64   `mapstructure:"seed" yaml:"seed"`
	TestRatio   float64 `mapstructure:"test_ratio" yaml:"test_ratio"`
	NEstimators int     `mapstructure:"n_estimators" yaml:"n_estimators"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

var defaults = map[string]any{
	"data.path":          "breast_cancer_data.csv",
	"http.addr":          ":8501",
	"model.seed":         42,
	"model.test_ratio":   0.2,
	"model.n_estimators": 100,
	"log.level":          "info",
}

// New returns a viper instance with defaults and env bindings applied. Callers
// may bind flags on it before passing it to Load.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) into the environment, then the config file at
// filePath (if it exists), then env overrides. An empty filePath skips the file.
func Load(v *viper.Viper, filePath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that would otherwise fail deep inside training.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.Path == "" {
		errs = append(errs, errors.New("data.path is required"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.Model.TestRatio <= 0 || c.Model.TestRatio >= 1 {
		errs = append(errs, fmt.Errorf("model.test_ratio %v must be in (0,1)", c.Model.TestRatio))
	}
	if c.Model.NEstimators <= 0 {
		errs = append(errs, fmt.Errorf("model.n_estimators %d must be positive", c.Model.NEstimators))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
