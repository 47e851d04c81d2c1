package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermowatch/thermowatch/core/config"
)

// Each test uses its own config type: the cache is keyed by type and shared
// process-wide.

func TestLoad_ParsesEnvironment(t *testing.T) {
	type backendConfig struct {
		BaseURL string        `env:"TEST_BACKEND_URL" envDefault:"http://localhost:3000"`
		Timeout time.Duration `env:"TEST_BACKEND_TIMEOUT" envDefault:"15s"`
	}

	t.Setenv("TEST_BACKEND_URL", "http://sensors.local:9000")

	var cfg backendConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://sensors.local:9000", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoad_CachesPerType(t *testing.T) {
	type pageConfig struct {
		Size int `env:"TEST_PAGE_SIZE" envDefault:"5"`
	}

	t.Setenv("TEST_PAGE_SIZE", "7")
	var first pageConfig
	require.NoError(t, config.Load(&first))
	require.Equal(t, 7, first.Size)

	// A changed environment is not observed: the first load wins.
	t.Setenv("TEST_PAGE_SIZE", "9")
	var second pageConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 7, second.Size)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type strictConfig struct {
		Token string `env:"TEST_REQUIRED_TOKEN,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)

	require.Error(t, err)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_REQUIRED_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg strictConfig
		config.MustLoad(&cfg)
	})
}

func TestLoad_NilTarget(t *testing.T) {
	var cfg *struct{}
	err := config.Load(cfg)

	require.Error(t, err)
}
