package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampaper/dreampaper/internal/config"
	"github.com/dreampaper/dreampaper/internal/generate"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DREAMPAPER_DIR", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dall-e-3", cfg.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.CredentialKey)
	assert.Equal(t, generate.Landscape, cfg.Orientation)
	assert.Equal(t, generate.QualityHigh, cfg.Quality)
	assert.Equal(t, "0 7 * * *", cfg.Schedule)
	assert.Equal(t, 60*time.Second, cfg.CycleTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DREAMPAPER_DIR", t.TempDir())
	t.Setenv("DREAMPAPER_ORIENTATION", "portrait")
	t.Setenv("DREAMPAPER_QUALITY", "standard")
	t.Setenv("DREAMPAPER_CYCLE_TIMEOUT", "90")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, generate.Portrait, cfg.Orientation)
	assert.Equal(t, generate.QualityStandard, cfg.Quality)
	assert.Equal(t, 90*time.Second, cfg.CycleTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DREAMPAPER_DIR", t.TempDir())

	t.Run("orientation", func(t *testing.T) {
		t.Setenv("DREAMPAPER_ORIENTATION", "diagonal")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("quality", func(t *testing.T) {
		t.Setenv("DREAMPAPER_QUALITY", "ultra")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("cycle timeout", func(t *testing.T) {
		t.Setenv("DREAMPAPER_CYCLE_TIMEOUT", "soon")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
