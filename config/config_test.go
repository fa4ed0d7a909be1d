package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScoringConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadScoringConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, DefaultScoringConfig(), cfg)
}

func TestLoadScoringConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	data := []byte("models:\n  - custom-model\ncache_minutes: 15\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := LoadScoringConfig(path)
	assert.Equal(t, []string{"custom-model"}, cfg.Models)
	assert.Equal(t, 15, cfg.CacheMinutes)
	// Unset fields keep defaults.
	assert.Equal(t, DefaultScoringConfig().OracleTimeoutSec, cfg.OracleTimeoutSec)
	assert.Equal(t, DefaultScoringConfig().QuotaRetries, cfg.QuotaRetries)
}

func TestLoadScoringConfigInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [unclosed"), 0o644))

	cfg := LoadScoringConfig(path)
	assert.Equal(t, DefaultScoringConfig(), cfg)
}

func TestScoringConfigDurations(t *testing.T) {
	cfg := DefaultScoringConfig()
	assert.Equal(t, time.Hour, cfg.CacheWindow())
	assert.Equal(t, 45*time.Second, cfg.OracleTimeout())
	assert.Equal(t, 2*time.Second, cfg.QuotaBackoff(1))
	assert.Equal(t, 4*time.Second, cfg.QuotaBackoff(2))
}
