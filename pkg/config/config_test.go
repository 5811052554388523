package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/config"
)

type sampleConfig struct {
	Name    string        `env:"SAMPLE_NAME" envDefault:"svc"`
	Port    int           `env:"SAMPLE_PORT" envDefault:"3000"`
	Origins []string      `env:"SAMPLE_ORIGINS" envSeparator:"," envDefault:"http://a.test"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"SAMPLE_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"SAMPLE_CACHED_VALUE" envDefault:"initial"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		require.NoError(t, config.Parse(&cfg, map[string]string{}))
		assert.Equal(t, "svc", cfg.Name)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, []string{"http://a.test"}, cfg.Origins)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		require.NoError(t, config.Parse(&cfg, map[string]string{
			"SAMPLE_PORT":    "8080",
			"SAMPLE_ORIGINS": "http://a.test,http://b.test",
		}))
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Parse(&cfg, map[string]string{})
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Parse(&cfg, map[string]string{"SAMPLE_PORT": "abc"})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, config.Parse[sampleConfig](nil, nil), config.ErrNilPointer)
	})
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("SAMPLE_CACHED_VALUE", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	t.Setenv("SAMPLE_CACHED_VALUE", "second")

	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)
}

func TestMustLoadPanicsOnMissingRequired(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
