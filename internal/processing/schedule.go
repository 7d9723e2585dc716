package processing

import (
	"log"
	"strings"
	"time"

	"adlens/internal/models"
	"adlens/internal/videoid"
)

// ScheduleOptions names the columns of the schedule table. Link columns
// are discovered by name containment rather than listed explicitly
// because the snapshot carries a variable number of them.
type ScheduleOptions struct {
	StartColumn string
	EndColumn   string
	LinkKeyword string
	DateLayout  string
}

// DefaultScheduleOptions matches the campaign planning sheet's native
// vocabulary.
func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		StartColumn: "Início",
		EndColumn:   "Fim",
		LinkKeyword: "Link",
		DateLayout:  "02/01/2006",
	}
}

// ParseScheduleEntries reads flight lines out of the schedule table. Rows
// whose dates fail to parse are skipped entirely; failed ID extractions
// within a row are dropped silently. An entry may carry zero creatives.
func ParseScheduleEntries(table *models.Table, opts ScheduleOptions) []models.ScheduleEntry {
	if table == nil {
		return nil
	}

	startCol := table.ColumnIndex(opts.StartColumn)
	endCol := table.ColumnIndex(opts.EndColumn)
	if startCol < 0 || endCol < 0 {
		log.Printf("Warning: schedule table missing %q/%q columns, no activation computed", opts.StartColumn, opts.EndColumn)
		return nil
	}

	var linkCols []int
	for i, h := range table.Headers {
		if strings.Contains(h, opts.LinkKeyword) {
			linkCols = append(linkCols, i)
		}
	}

	var entries []models.ScheduleEntry
	skipped := 0
	for _, row := range table.Rows {
		start, err := time.ParseInLocation(opts.DateLayout, strings.TrimSpace(table.Cell(row, startCol)), time.UTC)
		if err != nil {
			skipped++
			continue
		}
		end, err := time.ParseInLocation(opts.DateLayout, strings.TrimSpace(table.Cell(row, endCol)), time.UTC)
		if err != nil {
			skipped++
			continue
		}

		entry := models.ScheduleEntry{Start: models.Day(start), End: models.Day(end)}
		for _, col := range linkCols {
			if id, ok := videoid.Extract(table.Cell(row, col)); ok {
				entry.CreativeIDs = append(entry.CreativeIDs, id)
			}
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		log.Printf("Skipped %d schedule rows with unparseable dates", skipped)
	}
	return entries
}

// ExpandSchedule unions each entry's creative set into every day of its
// inclusive date range. Activation sets only ever grow during expansion.
func ExpandSchedule(entries []models.ScheduleEntry) models.DailyActivation {
	activation := make(models.DailyActivation)
	for _, entry := range entries {
		for day := entry.Start; !day.After(entry.End); day = day.AddDate(0, 0, 1) {
			set := activation[day]
			if set == nil {
				set = make(map[string]bool)
				activation[day] = set
			}
			for _, id := range entry.CreativeIDs {
				set[id] = true
			}
		}
	}
	return activation
}
