package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesSelectedFields(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", ":9090", "-d", "postgres://x", "-s", "k2", "-n", "x-auth", "-t", "24"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "k2", cfg.SecretKey)
	assert.Equal(t, "x-auth", cfg.TokenHeaderName)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}

func TestParseFlags_NoFlagsKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
}
