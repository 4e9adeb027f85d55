package config

import (
	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port    string `env:"PORT"     envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:""`

	DBUser     string `env:"DB_USER"     envDefault:"root"`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"3306"`
	DBName     string `env:"DB_NAME"     envDefault:"payment_relay"`

	EzipayBaseURL      string `env:"EZIPAY_BASE_URL"      envDefault:"https://api.ezipay.com"`
	EzipayClientID     string `env:"EZIPAY_CLIENT_ID"`
	EzipayClientSecret string `env:"EZIPAY_CLIENT_SECRET"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
