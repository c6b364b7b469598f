package config

import (
	"fmt"
)

// PostgresConfig describes the order store database used when
// ORDER_STORE=postgres.
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     string
	SSLMode  string
}

// LoadPostgresConfig reads POSTGRES_* variables. User, password, database and
// host are required; port defaults to 5432 and sslmode to disable.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	cfg := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     getenv("POSTGRES_PORT"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	for _, required := range []struct{ key, value string }{
		{"POSTGRES_USER", cfg.User},
		{"POSTGRES_PASSWORD", cfg.Password},
		{"POSTGRES_DB", cfg.Database},
		{"POSTGRES_HOSTNAME", cfg.Host},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("%s is required", required.key)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg, nil
}

// ConnectionString returns a lib/pq keyword/value connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
