// Package config loads environment variables into tagged structs using
// caarlos0/env. A .env file in the working directory is read once, without
// overriding variables that are already set.
//
// Load caches the parsed value per type, so every package can ask for its own
// config struct without re-parsing. Parse skips the cache and reads from an
// explicit map, which keeps tests independent of the process environment.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrNilPointer    = errors.New("nil pointer provided to config loader")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> *entry
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

// Load fills v from the process environment. The first successful or failed
// parse for a type is reused by later calls.
//
//	type DatabaseConfig struct {
//		URL string `env:"DATABASE_URL,required"`
//	}
//
//	var cfg DatabaseConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	actual, _ := cache.LoadOrStore(key, &entry{})
	e := actual.(*entry)

	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse fills v from vars only. Neither the process environment nor the
// cache is consulted.
func Parse[T any](v *T, vars map[string]string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.ParseWithOptions(v, env.Options{Environment: vars}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
