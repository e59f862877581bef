package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "INNKEEP"

type Config struct {
	App     AppConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	Payment PaymentConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Port      string `envconfig:"INNKEEP_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"INNKEEP_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"INNKEEP_LOG_FORMAT" default:"json"`
}

type StoreConfig struct {
	// Driver selects the booking/room persistence backend: "csv"
	// (default, flat files) or "postgres".
	Driver       string `envconfig:"INNKEEP_STORE_DRIVER" default:"csv"`
	RoomsFile    string `envconfig:"INNKEEP_ROOMS_FILE" default:"rooms.csv"`
	BookingsFile string `envconfig:"INNKEEP_BOOKINGS_FILE" default:"bookings.csv"`
}

type DBConfig struct {
	Host     string `envconfig:"INNKEEP_DB_HOST" default:"localhost"`
	Port     string `envconfig:"INNKEEP_DB_PORT" default:"5432"`
	User     string `envconfig:"INNKEEP_DB_USER" default:"postgres"`
	Password string `envconfig:"INNKEEP_DB_PASSWORD" default:""`
	Name     string `envconfig:"INNKEEP_DB_NAME" default:"innkeep"`
	SSLMode  string `envconfig:"INNKEEP_DB_SSLMODE" default:"disable"`
}

type RedisConfig struct {
	// Addr enables the availability-search cache when non-empty.
	Addr string `envconfig:"INNKEEP_REDIS_ADDR"`
}

type PaymentConfig struct {
	ChargeFailRate float64 `envconfig:"INNKEEP_PAYMENT_CHARGE_FAIL_RATE" default:"0.10"`
	RefundFailRate float64 `envconfig:"INNKEEP_PAYMENT_REFUND_FAIL_RATE" default:"0.05"`
}
