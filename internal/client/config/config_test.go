package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/petcheck/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.LookupURL)
	assert.Equal(t, "http", c.LookupTransport)
	assert.Equal(t, 10*time.Second, c.LookupTimeout)
	assert.Equal(t, "sqlite", c.Store)
	assert.Equal(t, "petcheck.db", c.DatabasePath)
	assert.Equal(t, "Sylvie", c.DefaultProfileName)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"petcheck"}
	t.Setenv(flagx.ConfigEnvVar, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:5000", cfg.LookupURL)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "sqlite", cfg.Store)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnvVar, "")

	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"lookup_url": "http://json:5000",
		"store":      "memory",
		"log_level":  "debug",
	})
	os.Args = []string{"petcheck", "-c", path, "-a", "http://flag:5000"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:5000", cfg.LookupURL)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
}
