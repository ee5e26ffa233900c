package paypay

import (
	"fmt"
	"time"

	"github.com/andyle182810/paypayopa/opaauth"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config enumerates every recognized client setting.
type Config struct {
	APIKey    string `env:"PAYPAY_API_KEY,required"`
	APISecret string `env:"PAYPAY_API_SECRET,required"`

	// Environment selection. BaseURL wins over PerfMode, which wins over
	// ProductionMode; the default is the sandbox.
	ProductionMode bool   `env:"PAYPAY_PRODUCTION_MODE" envDefault:"false"`
	PerfMode       bool   `env:"PAYPAY_PERF_MODE"       envDefault:"false"`
	BaseURL        string `env:"PAYPAY_BASE_URL"`

	AssumeMerchant string        `env:"PAYPAY_ASSUME_MERCHANT"`
	Timeout        time.Duration `env:"PAYPAY_TIMEOUT"   envDefault:"30s"`
	LogLevel       string        `env:"PAYPAY_LOG_LEVEL" envDefault:"info"`
}

func LoadConfig() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFrom reads the same variables from environ instead of the process
// environment.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	var cfg Config

	//nolint:exhaustruct
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) ResolveBaseURL() string {
	baseURL := SandboxBaseURL

	if c.ProductionMode {
		baseURL = ProductionBaseURL
	}

	if c.PerfMode {
		baseURL = PerfBaseURL
	}

	if c.BaseURL != "" {
		baseURL = c.BaseURL
	}

	return baseURL
}

func (c *Config) Credentials() opaauth.Credentials {
	return opaauth.Credentials{
		APIKey:    c.APIKey,
		APISecret: c.APISecret,
	}
}

// LoadConfigFile reads the variables from dotenv files only, ignoring the
// process environment.
func LoadConfigFile(filenames ...string) (*Config, error) {
	environ, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	return LoadConfigFrom(environ)
}
