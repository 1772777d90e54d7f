package merge

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/model"
	"github.com/prairiewatch/impact-map/internal/source"
)

// ParseDemographics converts the demographic table (region id, poverty
// rate, minority share) into rows for Merge.
func ParseDemographics(t *source.Table) ([]DemographicRow, error) {
	idIdx, ok := t.Col("GEOID")
	if !ok {
		return nil, eris.New("merge: demographic table missing GEOID column")
	}
	nameIdx, hasName := t.Col("NAME")
	povIdx, ok := t.Col("poverty_rate")
	if !ok {
		return nil, eris.New("merge: demographic table missing poverty_rate column")
	}
	minIdx, ok := t.Col("minority_pct")
	if !ok {
		return nil, eris.New("merge: demographic table missing minority_pct column")
	}

	rows := make([]DemographicRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := DemographicRow{
			RegionID:    CoerceFIPS(source.Cell(r, idIdx)),
			PovertyRate: parseFloat(source.Cell(r, povIdx)),
			MinorityPct: parseFloat(source.Cell(r, minIdx)),
		}
		if hasName {
			row.RegionName = source.Cell(r, nameIdx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseAQI converts the annual AQI summary into rows for Merge. The
// summary covers the whole country keyed by state and county name, so
// rows are filtered to the given state and resolved to region ids
// through nameToID (canonical county name -> region id). Counties that
// resolve to no known region are skipped with a warning.
func ParseAQI(t *source.Table, state string, nameToID map[string]string) ([]AQIRow, error) {
	stateIdx, ok := t.Col("State")
	if !ok {
		return nil, eris.New("merge: aqi table missing State column")
	}
	countyIdx, ok := t.Col("County")
	if !ok {
		return nil, eris.New("merge: aqi table missing County column")
	}
	yearIdx, ok := t.Col("Year")
	if !ok {
		return nil, eris.New("merge: aqi table missing Year column")
	}

	wantState := strings.ToLower(strings.TrimSpace(state))
	var rows []AQIRow
	skipped := 0
	for _, r := range t.Rows {
		if strings.ToLower(strings.TrimSpace(source.Cell(r, stateIdx))) != wantState {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(source.Cell(r, yearIdx)))
		if err != nil {
			continue
		}
		regionID, ok := nameToID[CanonicalRegionName(source.Cell(r, countyIdx))]
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, AQIRow{
			RegionID:     regionID,
			Year:         year,
			P90:          parseFloat(cellNamed(t, r, "90th Percentile AQI")),
			Median:       parseFloat(cellNamed(t, r, "Median AQI")),
			Max:          parseFloat(cellNamed(t, r, "Max AQI")),
			OzoneDays:    parseFloat(cellNamed(t, r, "Days Ozone")),
			PM25Days:     parseFloat(cellNamed(t, r, "Days PM2.5")),
			AQIDaysTotal: parseFloat(cellNamed(t, r, "Days with AQI")),
		})
	}
	if skipped > 0 {
		zap.L().Warn("merge: aqi counties without a matching region", zap.Int("skipped", skipped))
	}
	return rows, nil
}

// EnergyBurdenRow is one region of the LEAD tool county export.
type EnergyBurdenRow struct {
	RegionID         string
	EnergyBurdenPct  *float64
	AvgEnergyCostUSD *float64
	HouseholdIncome  *float64
}

// ConsumptionRow is one region of the energy profiles workbook.
type ConsumptionRow struct {
	RegionID         string
	ElecMWhPerCapita *float64
}

// ParseEnergyBurden converts the LEAD tool county CSV (read with its
// eight-row preamble skipped) into energy burden rows.
func ParseEnergyBurden(t *source.Table) ([]EnergyBurdenRow, error) {
	idIdx, ok := t.Col("Geography ID")
	if !ok {
		return nil, eris.New("merge: lead table missing Geography ID column")
	}
	rows := make([]EnergyBurdenRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, EnergyBurdenRow{
			RegionID:         CoerceFIPS(source.Cell(r, idIdx)),
			EnergyBurdenPct:  parseFloat(cellNamed(t, r, "Energy Burden (% income)")),
			AvgEnergyCostUSD: parseFloat(cellNamed(t, r, "Avg. Annual Energy Cost ($)")),
			HouseholdIncome:  parseFloat(cellNamed(t, r, "Household Income")),
		})
	}
	return rows, nil
}

// ParseConsumption converts the energy profiles County sheet into
// per-capita consumption rows, filtered to the given state
// abbreviation.
func ParseConsumption(t *source.Table, stateAbbr string) ([]ConsumptionRow, error) {
	stateIdx, ok := t.Col("state_abbr")
	if !ok {
		return nil, eris.New("merge: energy profiles sheet missing state_abbr column")
	}
	idIdx, ok := t.Col("county_id")
	if !ok {
		return nil, eris.New("merge: energy profiles sheet missing county_id column")
	}
	consIdx, ok := t.Col("consumption (MWh/capita)")
	if !ok {
		return nil, eris.New("merge: energy profiles sheet missing consumption (MWh/capita) column")
	}

	want := strings.ToUpper(strings.TrimSpace(stateAbbr))
	var rows []ConsumptionRow
	for _, r := range t.Rows {
		if strings.ToUpper(strings.TrimSpace(source.Cell(r, stateIdx))) != want {
			continue
		}
		rows = append(rows, ConsumptionRow{
			RegionID:         CoerceFIPS(source.Cell(r, idIdx)),
			ElecMWhPerCapita: parseFloat(source.Cell(r, consIdx)),
		})
	}
	return rows, nil
}

// ApplyEnergy folds the optional energy tables into an attribute table
// built by Merge. Left-join semantics match the AQI merge: only regions
// already in the table are touched, and absent values stay missing.
func ApplyEnergy(attrs map[string]model.RegionAttributes, burden []EnergyBurdenRow, consumption []ConsumptionRow) {
	for _, row := range burden {
		a, ok := attrs[row.RegionID]
		if !ok {
			continue
		}
		a.EnergyBurdenPct = row.EnergyBurdenPct
		a.AvgEnergyCostUSD = row.AvgEnergyCostUSD
		a.HouseholdIncome = row.HouseholdIncome
		attrs[row.RegionID] = a
	}
	for _, row := range consumption {
		a, ok := attrs[row.RegionID]
		if !ok {
			continue
		}
		a.ElecMWhPerCapita = row.ElecMWhPerCapita
		attrs[row.RegionID] = a
	}
}

// cellNamed reads the named column from a row, or "" when the source
// does not carry that column.
func cellNamed(t *source.Table, row []string, col string) string {
	idx, ok := t.Col(col)
	if !ok {
		return ""
	}
	return source.Cell(row, idx)
}

// parseFloat parses a numeric cell. Empty or malformed cells yield nil,
// the explicit missing marker; a numeric default here would fabricate
// an impact signal.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return model.Float(v)
}
