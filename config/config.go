package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret    string `env:"JWT_SECRET,required" validate:"required,min=32"`
	ResendAPIKey string `env:"RESEND_API_KEY"      validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"         validate:"required_if=Env production,required_if=Env staging"`

	// PublicBaseURL is the origin embedded in emailed links
	// (magic sign-in links and listing verification links).
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	VINLookupBaseURL    string `env:"VIN_LOOKUP_BASE_URL" envDefault:"https://vpic.nhtsa.dot.gov/api"`
	VINLookupTimeoutSec int    `env:"VIN_LOOKUP_TIMEOUT_SEC" envDefault:"10" validate:"min=1,max=60"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"     validate:"required_if=Env production,required_if=Env staging"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET" validate:"required_if=Env production,required_if=Env staging"`
	SellerFeeCents      int64  `env:"SELLER_FEE_CENTS" envDefault:"4900" validate:"min=0"`
	BuyerFeeCents       int64  `env:"BUYER_FEE_CENTS"  envDefault:"9900" validate:"min=0"`

	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"@hourly"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
