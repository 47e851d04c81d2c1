// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/thermowatch/thermowatch/core/config"
//
//	type BackendConfig struct {
//		BaseURL string        `env:"BACKEND_URL" envDefault:"http://localhost:3000"`
//		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
//	}
//
//	func main() {
//		var backend BackendConfig
//
//		// Load with error handling
//		if err := config.Load(&backend); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&backend)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 BackendConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 BackendConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type UIConfig struct {
//		PageSize int `env:"PAGE_SIZE" envDefault:"5"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&BackendConfig{})
//	config.MustLoad(&UIConfig{})
package config
