package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScoringConfig holds the knobs of the burnout/prioritization engine.
// Loaded from scoring.yaml when present, otherwise defaults apply.
type ScoringConfig struct {
	// Models is the ordered fallover chain. Earlier entries are tried
	// first; a later model is only attempted after the earlier one's
	// retry budget is exhausted.
	Models []string `yaml:"models"`

	// CacheMinutes is the freshness window for reusing a stored score.
	CacheMinutes int `yaml:"cache_minutes"`

	// OracleTimeoutSec bounds a single generation call.
	OracleTimeoutSec int `yaml:"oracle_timeout_sec"`

	// QuotaRetries is how many extra attempts a rate-limited model gets
	// before fallover moves on.
	QuotaRetries int `yaml:"quota_retries"`

	// QuotaBackoffSec is the base backoff; attempt n waits n*base.
	QuotaBackoffSec int `yaml:"quota_backoff_sec"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Models: []string{
			"gemini-2.0-flash",
			"gemini-2.0-flash-lite",
			"gemini-1.5-flash",
		},
		CacheMinutes:     60,
		OracleTimeoutSec: 45,
		QuotaRetries:     2,
		QuotaBackoffSec:  2,
	}
}

// LoadScoringConfig reads the yaml file at path, falling back to defaults
// for the file being absent or for any zero-valued field.
func LoadScoringConfig(path string) ScoringConfig {
	cfg := DefaultScoringConfig()
	if path == "" {
		path = "scoring.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("scoring config: %v (using defaults)", err)
		}
		return cfg
	}
	var fileCfg ScoringConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		log.Printf("scoring config: invalid yaml: %v (using defaults)", err)
		return cfg
	}
	if len(fileCfg.Models) > 0 {
		cfg.Models = fileCfg.Models
	}
	if fileCfg.CacheMinutes > 0 {
		cfg.CacheMinutes = fileCfg.CacheMinutes
	}
	if fileCfg.OracleTimeoutSec > 0 {
		cfg.OracleTimeoutSec = fileCfg.OracleTimeoutSec
	}
	if fileCfg.QuotaRetries > 0 {
		cfg.QuotaRetries = fileCfg.QuotaRetries
	}
	if fileCfg.QuotaBackoffSec > 0 {
		cfg.QuotaBackoffSec = fileCfg.QuotaBackoffSec
	}
	return cfg
}

// CacheWindow is the freshness window as a duration.
func (c ScoringConfig) CacheWindow() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

// OracleTimeout bounds one generation call.
func (c ScoringConfig) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSec) * time.Second
}

// QuotaBackoff returns the wait before retry attempt n (1-based):
// n * base, so 2s then 4s with the default base.
func (c ScoringConfig) QuotaBackoff(attempt int) time.Duration {
	return time.Duration(attempt*c.QuotaBackoffSec) * time.Second
}
