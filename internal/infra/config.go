package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"commission_go/internal/domain"
	"commission_go/internal/pricing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI looks for configuration.
const DefaultConfigPath = "configs/config.yaml"

// Config는 애플리케이션의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 내용을 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Pricing pricing.Rates `yaml:"pricing"`

	Storage struct {
		Path string `yaml:"path"` // Empty: per-user config dir
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "commission"
	cfg.App.Version = "dev"
	cfg.Pricing = pricing.DefaultRates()
	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	return cfg
}

// LoadConfig는 설정 파일을 읽고 파싱합니다.
// 파일이 없으면 domain.ErrConfigNotFound를 반환합니다.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig, applies environment
// overrides and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 환경 변수 오버라이드 지원
	overrideWithEnv(cfg)
	cfg.Pricing.Currency = strings.ToUpper(cfg.Pricing.Currency)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if len(c.Pricing.Currency) != 3 {
		return &domain.ConfigError{Field: "pricing.currency", Err: fmt.Errorf("want a 3-letter code, got %q", c.Pricing.Currency)}
	}

	fees := map[string]pricing.Fee{
		"pricing.shield":        c.Pricing.Shield,
		"pricing.bonus":         c.Pricing.Bonus,
		"pricing.table_service": c.Pricing.TableService,
	}
	for field, fee := range fees {
		if fee.Percentage.IsNegative() || fee.Static.IsNegative() {
			return &domain.ConfigError{Field: field, Err: errors.New("fees must not be negative")}
		}
	}

	if c.Pricing.TableTax.IsNegative() || c.Pricing.TableTax.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return &domain.ConfigError{Field: "pricing.table_tax", Err: fmt.Errorf("out of range: %s", c.Pricing.TableTax)}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &domain.ConfigError{Field: "logging.level", Err: fmt.Errorf("unknown level %q", c.Logging.Level)}
	}

	return nil
}

// overrideWithEnv는 환경 변수가 존재할 경우 설정 값을 덮어씁니다.
func overrideWithEnv(cfg *Config) {
	if path := os.Getenv("COMMISSION_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if level := os.Getenv("COMMISSION_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if currency := os.Getenv("COMMISSION_CURRENCY"); currency != "" {
		cfg.Pricing.Currency = strings.ToUpper(currency)
	}
}
