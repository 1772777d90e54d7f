package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiewatch/impact-map/internal/model"
	"github.com/prairiewatch/impact-map/internal/source"
)

func readTable(t *testing.T, csv string, opts source.CSVOptions) *source.Table {
	t.Helper()
	table, err := source.ReadCSV(strings.NewReader(csv), opts)
	require.NoError(t, err)
	return table
}

func TestParseDemographics(t *testing.T) {
	table := readTable(t, strings.Join([]string{
		"GEOID,NAME,poverty_rate,minority_pct",
		"17031.0,COOK,14.2,58.1",
		"1001,AUTAUGA,12.0,",
	}, "\n"), source.CSVOptions{})

	rows, err := ParseDemographics(table)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "17031", rows[0].RegionID)
	assert.Equal(t, "COOK", rows[0].RegionName)
	require.NotNil(t, rows[0].PovertyRate)
	assert.Equal(t, 14.2, *rows[0].PovertyRate)

	assert.Equal(t, "01001", rows[1].RegionID)
	assert.Nil(t, rows[1].MinorityPct)
}

func TestParseDemographicsMissingColumn(t *testing.T) {
	table := readTable(t, "GEOID,poverty_rate\n17031,14.2\n", source.CSVOptions{})

	_, err := ParseDemographics(table)
	assert.Error(t, err)
}

func TestParseAQI(t *testing.T) {
	table := readTable(t, strings.Join([]string{
		"State,County,Year,Median AQI,Max AQI",
		"Illinois,Cook,2024,44,155",
		"Illinois,Nowhere,2024,40,120",
		"Wisconsin,Dane,2024,38,110",
		"Illinois,Sangamon,not-a-year,30,90",
	}, "\n"), source.CSVOptions{})

	nameToID := map[string]string{"COOK": "17031", "SANGAMON": "17167"}

	rows, err := ParseAQI(table, "Illinois", nameToID)
	require.NoError(t, err)

	// Other states, unresolvable counties, and bad year rows drop out.
	require.Len(t, rows, 1)
	assert.Equal(t, "17031", rows[0].RegionID)
	assert.Equal(t, 2024, rows[0].Year)
	require.NotNil(t, rows[0].Median)
	assert.Equal(t, 44.0, *rows[0].Median)
	assert.Nil(t, rows[0].OzoneDays, "column absent from this export")
}

func TestParseEnergyBurden(t *testing.T) {
	table := readTable(t, strings.Join([]string{
		"preamble line 1",
		"preamble line 2",
		"Geography ID,Energy Burden (% income),Avg. Annual Energy Cost ($),Household Income",
		`17031,"3.1","2,140","68,000"`,
		"17167,,,",
	}, "\n"), source.CSVOptions{SkipRows: 2})

	rows, err := ParseEnergyBurden(table)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "17031", rows[0].RegionID)
	require.NotNil(t, rows[0].AvgEnergyCostUSD)
	assert.Equal(t, 2140.0, *rows[0].AvgEnergyCostUSD)

	assert.Nil(t, rows[1].EnergyBurdenPct)
	assert.Nil(t, rows[1].HouseholdIncome)
}

func TestParseConsumption(t *testing.T) {
	table := readTable(t, strings.Join([]string{
		"state_abbr,county_id,consumption (MWh/capita)",
		"IL,17031,4.2",
		"WI,55025,5.0",
	}, "\n"), source.CSVOptions{})

	rows, err := ParseConsumption(table, "il")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "17031", rows[0].RegionID)
	require.NotNil(t, rows[0].ElecMWhPerCapita)
	assert.Equal(t, 4.2, *rows[0].ElecMWhPerCapita)
}

func TestApplyEnergy(t *testing.T) {
	attrs := map[string]model.RegionAttributes{
		"17031": {RegionID: "17031"},
	}

	ApplyEnergy(attrs,
		[]EnergyBurdenRow{
			{RegionID: "17031", EnergyBurdenPct: f(3.1)},
			{RegionID: "99999", EnergyBurdenPct: f(9.9)}, // unknown region ignored
		},
		[]ConsumptionRow{
			{RegionID: "17031", ElecMWhPerCapita: f(4.2)},
		},
	)

	require.Len(t, attrs, 1)
	a := attrs["17031"]
	require.NotNil(t, a.EnergyBurdenPct)
	assert.Equal(t, 3.1, *a.EnergyBurdenPct)
	require.NotNil(t, a.ElecMWhPerCapita)
	assert.Equal(t, 4.2, *a.ElecMWhPerCapita)
	assert.Nil(t, a.AvgEnergyCostUSD)
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"4.2", f(4.2)},
		{"2,140", f(2140)},
		{" 17 ", f(17)},
		{"", nil},
		{"n/a", nil},
		{"NaN", nil},
		{"Inf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseFloat(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
