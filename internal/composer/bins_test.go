package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBinsEqualIntervals(t *testing.T) {
	values := map[string]*float64{
		"a": f(0),
		"b": f(50),
		"c": f(100),
		"d": nil, // missing values never shape the range
	}
	ramp := []string{"#aaa", "#bbb", "#ccc", "#ddd"}

	bins := makeBins(values, ramp)
	require.Len(t, bins, 4)

	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 25.0, bins[0].Upper)
	assert.Equal(t, "#aaa", bins[0].Color)
	assert.Equal(t, 75.0, bins[3].Lower)
	assert.Equal(t, 100.0, bins[3].Upper)

	// Bands tile the range without gaps.
	for i := 1; i < len(bins); i++ {
		assert.Equal(t, bins[i-1].Upper, bins[i].Lower)
	}
}

func TestMakeBinsDegenerateRange(t *testing.T) {
	values := map[string]*float64{"a": f(7), "b": f(7)}

	bins := makeBins(values, []string{"#aaa", "#bbb", "#ccc"})
	require.Len(t, bins, 1)
	assert.Equal(t, 7.0, bins[0].Lower)
	assert.Equal(t, 7.0, bins[0].Upper)
	assert.Equal(t, "#ccc", bins[0].Color)
}

func TestMakeBinsNoValues(t *testing.T) {
	assert.Nil(t, makeBins(nil, ylOrRd))
	assert.Nil(t, makeBins(map[string]*float64{"a": nil}, ylOrRd))
}
