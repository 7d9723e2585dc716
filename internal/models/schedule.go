package models

import "time"

// Table is a loaded tabular snapshot (CSV): a header row plus data rows.
// Stage inputs are passed around as values instead of re-read from disk.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at the given row and column index, or "" when the
// row is ragged and the column falls outside it.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ScheduleEntry is one campaign flight line: an inclusive date range and
// the creatives it activates.
type ScheduleEntry struct {
	Start       time.Time
	End         time.Time
	CreativeIDs []string
}

// DailyActivation maps a calendar day (UTC midnight) to the set of
// creative IDs active that day.
type DailyActivation map[time.Time]map[string]bool

// Day truncates a time to its UTC calendar day, the canonical key form.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyMixRow is the creative-mix aggregate for one day with at least one
// active creative.
type DailyMixRow struct {
	Day             time.Time
	ActiveCreatives int
	EmotionalPct    float64
	RationalPct     float64
	ProductPct      float64
	BrandPct        float64
	// ActiveVideoIDs is sorted so serialized output is reproducible.
	ActiveVideoIDs []string
}

// PerformanceRow is one day of the external KPI series.
type PerformanceRow struct {
	Day    time.Time
	Metric float64
}

// MergedDailyRow joins one day's creative mix with its KPI value.
type MergedDailyRow struct {
	DailyMixRow
	Metric float64
}
