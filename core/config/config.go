package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = map[reflect.Type]any{}
)

// Load fills cfg from the environment. The first call loads a .env file from the working
// directory if present; variables already set in the process environment are not overridden.
// Each type is parsed once; later calls copy the cached value into cfg.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is the common case.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(cfg).Elem()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}

	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration so the next Load re-reads the environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
