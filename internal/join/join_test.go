package join

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiewatch/impact-map/internal/model"
)

type mapLocator map[string]string

func (m mapLocator) Locate(lat, lon float64) (string, bool) {
	id, ok := m[key(lat, lon)]
	return id, ok
}

func key(lat, lon float64) string {
	return fmt.Sprintf("%.1f/%.1f", lat, lon)
}

func site(id string, lat, lon float64) model.SiteRecord {
	return model.SiteRecord{
		ID:        id,
		Name:      id,
		Operator:  "Op",
		Latitude:  lat,
		Longitude: lon,
		Status:    model.StatusExisting,
	}
}

func TestJoinAssignsEverySite(t *testing.T) {
	loc := mapLocator{
		key(41.9, -87.7): "17031",
		key(39.8, -89.6): "17167",
	}

	sites := []model.SiteRecord{
		site("dc-a", 41.9, -87.7),
		site("dc-b", 39.8, -89.6),
		site("dc-c", 38.0, -90.0), // no region
	}

	joined := Join(sites, loc)
	require.Len(t, joined, len(sites))

	assert.Equal(t, "17031", joined[0].RegionID)
	assert.True(t, joined[0].Assigned())
	assert.Equal(t, "17167", joined[1].RegionID)
	assert.Equal(t, model.RegionUnassigned, joined[2].RegionID)
	assert.False(t, joined[2].Assigned())

	// The site record itself survives the join untouched.
	assert.Equal(t, "dc-c", joined[2].ID)
}

func TestJoinPreservesInputOrder(t *testing.T) {
	sites := []model.SiteRecord{
		site("dc-1", 1, 1),
		site("dc-2", 2, 2),
		site("dc-3", 3, 3),
	}

	joined := Join(sites, mapLocator{})
	require.Len(t, joined, 3)
	for i, j := range joined {
		assert.Equal(t, sites[i].ID, j.ID)
		assert.Equal(t, model.RegionUnassigned, j.RegionID)
	}
}

func TestJoinEmptyInput(t *testing.T) {
	assert.Empty(t, Join(nil, mapLocator{}))
}
