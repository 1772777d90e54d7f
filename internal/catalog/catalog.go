// Package catalog loads and validates the tabular site source into
// typed, immutable SiteRecords.
package catalog

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/model"
	"github.com/prairiewatch/impact-map/internal/source"
)

// Envelope bounds the coordinates a site may carry. Points outside it
// are treated as data errors, not cross-border sites.
type Envelope struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether the point lies inside the envelope.
func (e Envelope) Contains(lat, lon float64) bool {
	return lat >= e.MinLat && lat <= e.MaxLat && lon >= e.MinLon && lon <= e.MaxLon
}

// LoadReport accounts for every row that did not make it into the
// catalog. Excluded rows are reported, never silently dropped.
type LoadReport struct {
	RowsRead   int
	Excluded   []*ValueRangeError
	Duplicates []string // site ids where a later row replaced an earlier one
}

// requiredColumns are the columns the source must carry. Narrative
// columns are optional.
var requiredColumns = []string{"id", "name", "operator", "lat", "lon", "status"}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load parses the site source, validates every row, and returns the
// surviving records in source order (deduplicated, later row wins).
func Load(r io.Reader, env Envelope) ([]model.SiteRecord, *LoadReport, error) {
	table, err := source.ReadCSV(r, source.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, nil, eris.Wrap(err, "catalog: parse site source")
	}

	for _, col := range requiredColumns {
		if _, ok := table.Col(col); !ok {
			return nil, nil, &SchemaError{Column: col}
		}
	}

	report := &LoadReport{RowsRead: len(table.Rows)}

	byID := make(map[string]int) // site id -> index into records
	var records []model.SiteRecord

	for i, row := range table.Rows {
		rec, vErr := parseRow(table, row, i+1, env)
		if vErr != nil {
			report.Excluded = append(report.Excluded, vErr)
			zap.L().Warn("catalog: excluding invalid row",
				zap.Int("row", vErr.Row),
				zap.String("site_id", vErr.SiteID),
				zap.String("reason", vErr.Field+" "+vErr.Reason),
			)
			continue
		}

		if prev, dup := byID[rec.ID]; dup {
			// Later record wins.
			records[prev] = rec
			report.Duplicates = append(report.Duplicates, rec.ID)
			zap.L().Warn("catalog: duplicate site id, keeping later row",
				zap.String("site_id", rec.ID),
				zap.Int("row", i+1),
			)
			continue
		}

		byID[rec.ID] = len(records)
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, report, &EmptyCatalogError{TotalRows: report.RowsRead}
	}

	return records, report, nil
}

func parseRow(table *source.Table, row []string, rowNum int, env Envelope) (model.SiteRecord, *ValueRangeError) {
	get := func(col string) string {
		idx, ok := table.Col(col)
		if !ok {
			return ""
		}
		return source.Cell(row, idx)
	}

	id := get("id")

	lat, err := strconv.ParseFloat(get("lat"), 64)
	if err != nil {
		return model.SiteRecord{}, &ValueRangeError{Row: rowNum, SiteID: id, Field: "lat", Reason: "is not numeric"}
	}
	lon, err := strconv.ParseFloat(get("lon"), 64)
	if err != nil {
		return model.SiteRecord{}, &ValueRangeError{Row: rowNum, SiteID: id, Field: "lon", Reason: "is not numeric"}
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return model.SiteRecord{}, &ValueRangeError{Row: rowNum, SiteID: id, Field: "lat/lon", Reason: "is not finite"}
	}
	if !env.Contains(lat, lon) {
		return model.SiteRecord{}, &ValueRangeError{Row: rowNum, SiteID: id, Field: "lat/lon", Reason: "is outside the region envelope"}
	}

	rec := model.SiteRecord{
		ID:                id,
		Name:              get("name"),
		Operator:          get("operator"),
		Latitude:          lat,
		Longitude:         lon,
		Status:            model.SiteStatus(strings.ToLower(get("status"))),
		City:              get("city"),
		State:             get("state"),
		AddressHint:       get("address_or_hint"),
		LocationPrecision: get("location_precision"),
		Surroundings:      get("surroundings_snapshot"),
		CommunitySignals:  get("community_signals"),
		Stressors:         get("stressors"),
		Sources:           splitSources(get("sources")),
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if eris.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return model.SiteRecord{}, &ValueRangeError{
				Row:    rowNum,
				SiteID: id,
				Field:  strings.ToLower(fe.Field()),
				Reason: "fails " + fe.Tag() + " validation",
			}
		}
		return model.SiteRecord{}, &ValueRangeError{Row: rowNum, SiteID: id, Field: "record", Reason: "fails validation"}
	}

	return rec, nil
}

// splitSources splits the semicolon-delimited source URL list.
func splitSources(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
