package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiewatch/impact-map/internal/model"
)

func f(v float64) *float64 { return model.Float(v) }

func TestMergeLeftJoin(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "17031", RegionName: "COOK", PovertyRate: f(14.2), MinorityPct: f(58.1)},
		{RegionID: "17167", RegionName: "SANGAMON", PovertyRate: f(12.8), MinorityPct: f(22.4)},
	}
	aqi := []AQIRow{
		{RegionID: "17031", Year: 2023, Median: f(44), Max: f(155)},
	}

	attrs, err := Merge(dem, aqi, Options{})
	require.NoError(t, err)
	require.Len(t, attrs, 2)

	cook := attrs["17031"]
	require.NotNil(t, cook.MedianAQI)
	assert.Equal(t, 44.0, *cook.MedianAQI)
	assert.Equal(t, 2023, cook.SourceYear)

	// Region absent from the AQI table keeps demographics, AQI missing.
	sangamon := attrs["17167"]
	assert.Equal(t, "SANGAMON", sangamon.RegionName)
	assert.Nil(t, sangamon.MedianAQI)
	assert.Nil(t, sangamon.MaxAQI)
	assert.Zero(t, sangamon.SourceYear)
}

func TestMergeOnlyLatestYear(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "17031", PovertyRate: f(10), MinorityPct: f(10)},
		{RegionID: "17167", PovertyRate: f(20), MinorityPct: f(20)},
	}
	aqi := []AQIRow{
		{RegionID: "17031", Year: 2022, Median: f(40)},
		{RegionID: "17031", Year: 2024, Median: f(52)},
		// Only has a stale year; must not be back-filled.
		{RegionID: "17167", Year: 2022, Median: f(38)},
	}

	attrs, err := Merge(dem, aqi, Options{})
	require.NoError(t, err)

	require.NotNil(t, attrs["17031"].MedianAQI)
	assert.Equal(t, 52.0, *attrs["17031"].MedianAQI)
	assert.Equal(t, 2024, attrs["17031"].SourceYear)

	assert.Nil(t, attrs["17167"].MedianAQI)
}

func TestMergeIgnoresUnknownAQIRegions(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "17031", PovertyRate: f(10), MinorityPct: f(10)},
	}
	aqi := []AQIRow{
		{RegionID: "17031", Year: 2024, Median: f(50)},
		{RegionID: "99999", Year: 2024, Median: f(99)},
	}

	attrs, err := Merge(dem, aqi, Options{})
	require.NoError(t, err)
	assert.Len(t, attrs, 1)
}

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		name string
		dem  []DemographicRow
	}{
		{"empty table", nil},
		{"empty region id", []DemographicRow{{RegionID: ""}}},
		{
			"duplicate region id",
			[]DemographicRow{{RegionID: "17031"}, {RegionID: "17031"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.dem, nil, Options{})
			assert.Error(t, err)
		})
	}
}

func TestCompositeScore(t *testing.T) {
	// Two regions: A (poverty 30, minority 60) and B (poverty 10,
	// minority 20). Min-max normalization makes A's inputs both 1.0 and
	// B's both 0.0, so A scores 1.0 and B 0.0.
	dem := []DemographicRow{
		{RegionID: "A", PovertyRate: f(30), MinorityPct: f(60)},
		{RegionID: "B", PovertyRate: f(10), MinorityPct: f(20)},
	}

	attrs, err := Merge(dem, nil, Options{})
	require.NoError(t, err)

	require.NotNil(t, attrs["A"].CompositeImpactScore)
	require.NotNil(t, attrs["B"].CompositeImpactScore)
	assert.InDelta(t, 1.0, *attrs["A"].CompositeImpactScore, 1e-9)
	assert.InDelta(t, 0.0, *attrs["B"].CompositeImpactScore, 1e-9)
	assert.Greater(t, *attrs["A"].CompositeImpactScore, *attrs["B"].CompositeImpactScore)
}

func TestCompositeScoreMissingInput(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "A", PovertyRate: f(30), MinorityPct: f(60)},
		{RegionID: "B", PovertyRate: f(10)}, // minority share missing
	}

	attrs, err := Merge(dem, nil, Options{})
	require.NoError(t, err)

	assert.NotNil(t, attrs["A"].CompositeImpactScore)
	assert.Nil(t, attrs["B"].CompositeImpactScore, "missing input keeps the score missing, never zero")
}

func TestCompositeScoreWeights(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "A", PovertyRate: f(30), MinorityPct: f(20)},
		{RegionID: "B", PovertyRate: f(10), MinorityPct: f(60)},
	}

	// All weight on poverty: A normalizes to 1.0 there, B to 0.0.
	attrs, err := Merge(dem, nil, Options{PovertyWeight: 1.0, MinorityWeight: 0.0})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, *attrs["A"].CompositeImpactScore, 1e-9)
	assert.InDelta(t, 0.0, *attrs["B"].CompositeImpactScore, 1e-9)
}

func TestMergeOrderIndependent(t *testing.T) {
	dem := []DemographicRow{
		{RegionID: "A", PovertyRate: f(30), MinorityPct: f(60)},
		{RegionID: "B", PovertyRate: f(10), MinorityPct: f(20)},
		{RegionID: "C", PovertyRate: f(20), MinorityPct: f(40)},
	}
	aqi := []AQIRow{
		{RegionID: "A", Year: 2024, Median: f(50)},
		{RegionID: "B", Year: 2024, Median: f(40)},
	}

	forward, err := Merge(dem, aqi, Options{})
	require.NoError(t, err)

	reversedDem := []DemographicRow{dem[2], dem[1], dem[0]}
	reversedAQI := []AQIRow{aqi[1], aqi[0]}
	backward, err := Merge(reversedDem, reversedAQI, Options{})
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestLatestYear(t *testing.T) {
	tests := []struct {
		name   string
		rows   []AQIRow
		want   int
		wantOK bool
	}{
		{"empty", nil, 0, false},
		{"single", []AQIRow{{Year: 2023}}, 2023, true},
		{"picks max", []AQIRow{{Year: 2022}, {Year: 2024}, {Year: 2023}}, 2024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := LatestYear(tt.rows)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, year)
		})
	}
}

func TestNormalizeMinMax(t *testing.T) {
	got := normalizeMinMax(map[string]float64{"a": 10, "b": 20, "c": 30})
	assert.InDelta(t, 0.0, got["a"], 1e-9)
	assert.InDelta(t, 0.5, got["b"], 1e-9)
	assert.InDelta(t, 1.0, got["c"], 1e-9)
}

func TestNormalizeMinMaxDegenerate(t *testing.T) {
	got := normalizeMinMax(map[string]float64{"a": 7, "b": 7, "c": 7})
	for id, v := range got {
		assert.InDelta(t, 0.5, v, 1e-9, "region %s", id)
	}
	assert.Nil(t, normalizeMinMax(nil))
}
