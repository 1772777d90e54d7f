package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddLayerKeepsCorrespondence(t *testing.T) {
	var rm RenderModel

	rm.AddLayer(
		LayerDescriptor{ID: "choropleth-poverty_rate", Kind: LayerChoropleth},
		LegendEntry{Title: "Poverty rate"},
	)
	rm.AddLayer(
		LayerDescriptor{ID: "markers-existing", Kind: LayerMarkers},
		LegendEntry{Title: "Existing"},
	)

	assert.Len(t, rm.Layers, 2)
	assert.Len(t, rm.Legend, 2)
	for i := range rm.Layers {
		assert.Equal(t, rm.Layers[i].ID, rm.Legend[i].LayerID,
			"legend entry %d must reference its layer", i)
	}
}
