package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Illinois", cfg.Region.StateName)
	assert.Equal(t, "GEOID", cfg.Region.IDField)
	assert.Equal(t, 36.9, cfg.Region.MinLat)
	assert.Equal(t, -87.0, cfg.Region.MaxLon)
	assert.Equal(t, 0.5, cfg.Score.PovertyWeight)
	assert.Equal(t, 10.0, cfg.Cluster.ThresholdKM)
	assert.Equal(t, 7, cfg.Map.Zoom)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("IMPACT_CLUSTER_THRESHOLD_KM", "25")
	t.Setenv("IMPACT_REGION_STATE_NAME", "Iowa")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Cluster.ThresholdKM)
	assert.Equal(t, "Iowa", cfg.Region.StateName)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
