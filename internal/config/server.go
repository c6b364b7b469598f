package config

import "fmt"

// Order store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// ServerConfig holds storefront server configuration
type ServerConfig struct {
	Port string
	// OrderStore is memory or postgres
	OrderStore string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	config := ServerConfig{
		Port:       getenv("PORT"),
		OrderStore: getenv("ORDER_STORE"),
	}

	if config.Port == "" {
		config.Port = "8080" // Default to port 8080
	}
	if config.OrderStore == "" {
		config.OrderStore = StoreMemory
	}
	if config.OrderStore != StoreMemory && config.OrderStore != StorePostgres {
		return ServerConfig{}, fmt.Errorf("ORDER_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, config.OrderStore)
	}

	return config, nil
}
