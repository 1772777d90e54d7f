package composer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiewatch/impact-map/internal/model"
)

func TestDefaultPalette(t *testing.T) {
	pal := DefaultPalette()

	assert.Equal(t, "green", pal.StatusColors[model.StatusExisting])
	assert.Equal(t, "blue", pal.StatusColors[model.StatusProposed])
	assert.Equal(t, "red", pal.StatusColors[model.StatusDenied])
	assert.Equal(t, "purple", pal.ClusterColor)
	assert.Equal(t, "#d9d9d9", pal.MissingColor)

	for _, m := range model.Metrics {
		assert.NotEmpty(t, pal.Ramps[m], "metric %s has no ramp", m)
	}
}

func TestLoadPaletteMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
status_colors:
  denied: darkred
cluster_color: indigo
`), 0o644))

	pal, err := LoadPalette(path)
	require.NoError(t, err)

	assert.Equal(t, "darkred", pal.StatusColors[model.StatusDenied])
	assert.Equal(t, "indigo", pal.ClusterColor)

	// Untouched keys keep their defaults.
	assert.Equal(t, "green", pal.StatusColors[model.StatusExisting])
	assert.Equal(t, "#d9d9d9", pal.MissingColor)
}

func TestLoadPaletteErrors(t *testing.T) {
	_, err := LoadPalette(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("status_colors: ["), 0o644))
	_, err = LoadPalette(path)
	assert.Error(t, err)
}

func TestPaletteFallbacks(t *testing.T) {
	pal := Palette{}

	assert.Equal(t, "gray", pal.statusColor(model.SiteStatus("mystery")))
	assert.Equal(t, ylOrRd, pal.ramp(model.MetricPovertyRate))
}
