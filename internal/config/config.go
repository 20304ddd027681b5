package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/maplelisted/maplelisted/internal/fees"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"MapleListed"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"maplelisted"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	}

	Fees struct {
		Model             string  `envconfig:"FEE_MODEL" default:"hybrid"`
		ListingFeeCents   int64   `envconfig:"LISTING_FEE_CENTS" default:"29900"`
		SuccessPercentage float64 `envconfig:"SUCCESS_FEE_PERCENT" default:"1.5"`
		SuccessMinCents   int64   `envconfig:"SUCCESS_FEE_MIN_CENTS" default:"99900"`
		SuccessMaxCents   int64   `envconfig:"SUCCESS_FEE_MAX_CENTS" default:"999900"`
		FlatFeeCents      int64   `envconfig:"FLAT_FEE_CENTS" default:"199900"`
		Currency          string  `envconfig:"FEE_CURRENCY" default:"CAD"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// defaultTiers is the tiered fee schedule. The zero bound on the last entry
// is the catch-all.
var defaultTiers = []fees.Tier{
	{MaxPriceCents: 30_000_000, FeeCents: 99_900},
	{MaxPriceCents: 50_000_000, FeeCents: 149_900},
	{MaxPriceCents: 75_000_000, FeeCents: 199_900},
	{MaxPriceCents: 100_000_000, FeeCents: 249_900},
	{MaxPriceCents: 0, FeeCents: 299_900},
}

// FeePolicy builds the immutable fee policy handed to the transaction
// service at startup.
func (c *Config) FeePolicy() fees.Policy {
	return fees.Policy{
		DefaultModel:    fees.Model(c.Fees.Model),
		FlatFeeCents:    c.Fees.FlatFeeCents,
		Percentage:      c.Fees.SuccessPercentage,
		MinimumCents:    c.Fees.SuccessMinCents,
		MaximumCents:    c.Fees.SuccessMaxCents,
		ListingFeeCents: c.Fees.ListingFeeCents,
		Tiers:           defaultTiers,
		Currency:        c.Fees.Currency,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
