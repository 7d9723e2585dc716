package processing

import (
	"log"
	"strconv"
	"strings"
	"time"

	"adlens/internal/models"
)

// PerformanceOptions names the KPI table's columns.
type PerformanceOptions struct {
	DateColumn   string
	MetricColumn string
}

func DefaultPerformanceOptions() PerformanceOptions {
	return PerformanceOptions{
		DateColumn:   "day",
		MetricColumn: "PerformanceMetric",
	}
}

// Date layouts the KPI export is known to use.
var performanceDateLayouts = []string{"2006-01-02", "02/01/2006"}

// NormalizePerformance parses the KPI table into typed daily rows.
// Percent-suffixed metric strings are stripped and parsed as floats;
// rows with an unparseable date or metric are skipped.
func NormalizePerformance(table *models.Table, opts PerformanceOptions) []models.PerformanceRow {
	if table == nil {
		return nil
	}

	dateCol := table.ColumnIndex(opts.DateColumn)
	metricCol := table.ColumnIndex(opts.MetricColumn)
	if dateCol < 0 || metricCol < 0 {
		log.Printf("Warning: performance table missing %q/%q columns", opts.DateColumn, opts.MetricColumn)
		return nil
	}

	var rows []models.PerformanceRow
	skipped := 0
	for _, row := range table.Rows {
		day, ok := parsePerformanceDate(table.Cell(row, dateCol))
		if !ok {
			skipped++
			continue
		}
		metric, err := parseMetric(table.Cell(row, metricCol))
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, models.PerformanceRow{Day: day, Metric: metric})
	}

	if skipped > 0 {
		log.Printf("Skipped %d performance rows with unparseable values", skipped)
	}
	return rows
}

func parsePerformanceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range performanceDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return models.Day(t), true
		}
	}
	return time.Time{}, false
}

func parseMetric(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return strconv.ParseFloat(s, 64)
}

// JoinPerformance inner-joins the KPI series with the daily mix on day.
// Days present on only one side contribute nothing; there is no
// interpolation or forward-fill. Output preserves the KPI series order,
// mirroring how the merged table reads when the KPI export is
// chronological.
func JoinPerformance(perf []models.PerformanceRow, mix []models.DailyMixRow) []models.MergedDailyRow {
	byDay := make(map[time.Time]models.DailyMixRow, len(mix))
	for _, m := range mix {
		byDay[m.Day] = m
	}

	var merged []models.MergedDailyRow
	for _, p := range perf {
		m, ok := byDay[p.Day]
		if !ok {
			continue
		}
		merged = append(merged, models.MergedDailyRow{DailyMixRow: m, Metric: p.Metric})
	}
	return merged
}
