// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env library
// for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/ouch/core/config"
//
//	type PageConfig struct {
//		Theme  string `env:"OUCH_THEME" envDefault:"light"`
//		Editor string `env:"OUCH_EDITOR"`
//	}
//
//	var cfg PageConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process. Different types are cached
// independently. Tests that change the environment call Reset between loads.
package config
