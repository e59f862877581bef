package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewPostgresDB opens a connection pool, retrying while the database
// comes up (containers routinely win the race against their database).
func NewPostgresDB(cfg Config, log zerolog.Logger) (*sql.DB, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, sslMode)

	var db *sql.DB
	var err error
	maxRetries := 10

	for i := 1; i <= maxRetries; i++ {
		log.Info().Int("attempt", i).Int("max", maxRetries).Msg("connecting to database")
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			log.Info().Msg("database connected")
			return db, nil
		}

		log.Warn().Err(err).Msg("database not ready yet, waiting 2 seconds")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("connecting to database: %w", err)
}
