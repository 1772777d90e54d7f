package merge

// LatestYear selects the AQI year to merge: the maximum year present
// across the table. Returns ok=false for an empty table.
func LatestYear(rows []AQIRow) (int, bool) {
	var year int
	found := false
	for _, row := range rows {
		if !found || row.Year > year {
			year = row.Year
			found = true
		}
	}
	return year, found
}
