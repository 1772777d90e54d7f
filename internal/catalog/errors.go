package catalog

import "fmt"

// SchemaError reports a required column missing from the site source.
// Fatal: the load aborts because no row can be interpreted.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog: required column %q missing from source", e.Column)
}

// ValueRangeError reports one row failing validation. Recoverable: the
// row is excluded and the load continues.
type ValueRangeError struct {
	Row    int // 1-based data row number
	SiteID string
	Field  string
	Reason string
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("catalog: row %d (site %q): %s %s", e.Row, e.SiteID, e.Field, e.Reason)
}

// EmptyCatalogError reports that filtering left zero valid rows.
type EmptyCatalogError struct {
	TotalRows int
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("catalog: no valid rows after validation (%d rows read)", e.TotalRows)
}
