package config_test

import (
	"fmt"

	"github.com/stockpulse/platform/pkg/config"
)

// Example demonstrates how to use the config package.
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("DB Max Connections: %d\n", cfg.Database.MaxConns)
	fmt.Printf("NSE budget: %d req/min\n", cfg.NSE.RequestsPerMinute)
}
