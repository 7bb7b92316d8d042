package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"txn-normalizer-go/infrastructure/logger"
	"txn-normalizer-go/pair"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string                  `yaml:"env"`
	MetricsAddr string                  `yaml:"metricsAddr"`
	Logger      logger.Config           `yaml:"logger"`
	Currencies  CurrencyConfig          `yaml:"currencies"`
	Sources     map[string]SourceConfig `yaml:"sources"`
}

// CurrencyConfig 货币主数据：在内置法币表之外补充的计价币种。
type CurrencyConfig struct {
	ExtraQuotes []string `yaml:"extraQuotes"`
}

// SourceConfig 保存单个数据来源的解析约定。
type SourceConfig struct {
	Timezone   string `yaml:"timezone"`   // 该来源墙上时间的 IANA 时区名，空则 UTC
	MonthFirst *bool  `yaml:"monthFirst"` // 斜杠日期按月在前（美式）解读，默认 true
	DateFormat string `yaml:"dateFormat"` // 可选：跳过推断，固定使用这个布局
}

// MonthFirstOrDefault 返回该来源的斜杠日期解读方向。
func (s SourceConfig) MonthFirstOrDefault() bool {
	if s.MonthFirst == nil {
		return true
	}
	return *s.MonthFirst
}

// KnownQuotes 返回完整的 known-quote 集合（内置法币表 + 配置扩展）。
func (c AppConfig) KnownQuotes() []string {
	quotes := make([]string, 0, len(pair.Fiats)+len(c.Currencies.ExtraQuotes))
	quotes = append(quotes, pair.Fiats...)
	for _, q := range c.Currencies.ExtraQuotes {
		quotes = append(quotes, strings.ToUpper(strings.TrimSpace(q)))
	}
	return quotes
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Logger.Level == "" {
		cfg.Logger = logger.DefaultConfig()
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides operational fields from env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("TXN_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("TXN_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if len(cfg.Sources) == 0 {
		return errors.New("sources config is required")
	}
	for name, src := range cfg.Sources {
		if src.Timezone != "" {
			if _, err := time.LoadLocation(src.Timezone); err != nil {
				return fmt.Errorf("sources.%s.timezone: %w", name, err)
			}
		}
	}
	return ValidateParams(cfg)
}
