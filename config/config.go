package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents service configuration for dp-quandl-api
type Config struct {
	BindAddr                   string        `envconfig:"BIND_ADDR"`
	GracefulShutdownTimeout    time.Duration `envconfig:"GRACEFUL_SHUTDOWN_TIMEOUT"`
	HealthCheckInterval        time.Duration `envconfig:"HEALTHCHECK_INTERVAL"`
	HealthCheckCriticalTimeout time.Duration `envconfig:"HEALTHCHECK_CRITICAL_TIMEOUT"`
	DefaultRequestTimeout      time.Duration `envconfig:"DEFAULT_REQUEST_TIMEOUT"`
	QuandlURL                  string        `envconfig:"QUANDL_URL"`
	QuandlAPIKey               string        `envconfig:"QUANDL_API_KEY"                json:"-"`
	QuandlHealthDatabase       string        `envconfig:"QUANDL_HEALTH_DATABASE"`
	QuandlHealthDataset        string        `envconfig:"QUANDL_HEALTH_DATASET"`
	OTExporterOTLPEndpoint     string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTServiceName              string        `envconfig:"OTEL_SERVICE_NAME"`
	OTBatchTimeout             time.Duration `envconfig:"OTEL_BATCH_TIMEOUT"`
	OtelEnabled                bool          `envconfig:"OTEL_ENABLED"`
}

var cfg *Config

// Get returns the default config with any modifications through environment
// variables
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		BindAddr:                   ":28300",
		GracefulShutdownTimeout:    5 * time.Second,
		HealthCheckInterval:        30 * time.Second,
		HealthCheckCriticalTimeout: 90 * time.Second,
		DefaultRequestTimeout:      10 * time.Second,
		QuandlURL:                  "https://www.quandl.com",
		QuandlAPIKey:               "",
		QuandlHealthDatabase:       "WIKI",
		QuandlHealthDataset:        "AAPL",
		OTExporterOTLPEndpoint:     "localhost:4317",
		OTServiceName:              "dp-quandl-api",
		OTBatchTimeout:             5 * time.Second,
		OtelEnabled:                false,
	}

	return cfg, envconfig.Process("", cfg)
}
