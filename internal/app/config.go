package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8082"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"60s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// ERPNext connection. Deliberately without defaults: a missing value is
	// reported per request as a configuration error instead of blocking
	// startup, so the dashboard shell still loads.
	ERPURL       string `envconfig:"ERP_URL"`
	ERPAPIKey    string `envconfig:"ERP_API_KEY"`
	ERPAPISecret string `envconfig:"ERP_API_SECRET"`

	// Overdue invoice risk thresholds in days, overridable per request.
	OverdueDaysMediumMax int `envconfig:"OVERDUE_DAYS_MEDIUM_MAX" default:"7"`
	OverdueDaysHighMin   int `envconfig:"OVERDUE_DAYS_HIGH_MIN" default:"8"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
