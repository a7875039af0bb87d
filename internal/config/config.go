package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultStubPort        = "8081"
	defaultRatesBaseURL    = "https://greentech-api.bitsandvolts.in"
	defaultPricingBaseURL  = "http://localhost:3000"
	defaultUpstreamTimeout = 15 * time.Second
	defaultLogLevel        = "INFO"
	defaultDBPath          = "./dev.db"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv          string
	Port            string
	StubPort        string
	RatesBaseURL    string
	PricingBaseURL  string
	UpstreamTimeout time.Duration
	LogLevel        string
	DBPath          string
	DatabaseURL     string

	// Warnings lists fallbacks taken while loading, for the caller to log
	// once its logger is set up.
	Warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables. Real environment
	// variables win over the file.
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:         getenv("APP_ENV", defaultAppEnv),
		Port:           getenv("PORT", defaultPort),
		StubPort:       getenv("STUB_PORT", defaultStubPort),
		RatesBaseURL:   strings.TrimSpace(os.Getenv("RATES_BASE_URL")),
		PricingBaseURL: strings.TrimSpace(os.Getenv("PRICING_BASE_URL")),
		LogLevel:       getenv("LOG_LEVEL", defaultLogLevel),
		DBPath:         getenv("DB_PATH", defaultDBPath),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	if cfg.RatesBaseURL == "" {
		cfg.RatesBaseURL = defaultRatesBaseURL
		cfg.warn("RATES_BASE_URL is not set, using " + defaultRatesBaseURL)
	}
	if cfg.PricingBaseURL == "" {
		cfg.PricingBaseURL = defaultPricingBaseURL
		cfg.warn("PRICING_BASE_URL is not set, using " + defaultPricingBaseURL)
	}

	cfg.UpstreamTimeout = defaultUpstreamTimeout
	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			cfg.warn(fmt.Sprintf("UPSTREAM_TIMEOUT %q is not a positive duration, using %s", raw, defaultUpstreamTimeout))
		} else {
			cfg.UpstreamTimeout = d
		}
	}

	return cfg
}

// IsDev reports whether the process runs in the development environment.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.AppEnv, defaultAppEnv)
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
