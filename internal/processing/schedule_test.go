package processing

import (
	"testing"
	"time"

	"adlens/internal/models"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestParseScheduleEntries(t *testing.T) {
	table := &models.Table{
		Headers: []string{"Campanha", "Início", "Fim", "Link Criativo", "Link Alternativo"},
		Rows: [][]string{
			{"Verão", "01/03/2024", "02/03/2024", "https://youtu.be/abc12345678", ""},
			{"Inverno", "05/03/2024", "05/03/2024", "https://www.youtube.com/watch?v=def12345678", "https://youtu.be/ghi12345678"},
			{"Quebrada", "not-a-date", "02/03/2024", "https://youtu.be/jkl12345678", ""},
			{"Sem links", "10/03/2024", "10/03/2024", "no url here", ""},
		},
	}

	entries := ParseScheduleEntries(table, DefaultScheduleOptions())
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (bad-date row skipped)", len(entries))
	}

	if got := entries[0].CreativeIDs; len(got) != 1 || got[0] != "abc12345678" {
		t.Errorf("entry 0 creatives = %v, want [abc12345678]", got)
	}
	if got := entries[1].CreativeIDs; len(got) != 2 {
		t.Errorf("entry 1 should collect IDs from every link column, got %v", got)
	}
	if got := entries[2].CreativeIDs; len(got) != 0 {
		t.Errorf("failed extractions must be dropped silently, got %v", got)
	}
}

func TestParseScheduleEntriesMissingColumns(t *testing.T) {
	table := &models.Table{
		Headers: []string{"Campanha", "Link Criativo"},
		Rows:    [][]string{{"Verão", "https://youtu.be/abc12345678"}},
	}
	if entries := ParseScheduleEntries(table, DefaultScheduleOptions()); entries != nil {
		t.Errorf("schedule without date columns should produce no entries, got %v", entries)
	}
}

func TestParseScheduleEntriesNilTable(t *testing.T) {
	if entries := ParseScheduleEntries(nil, DefaultScheduleOptions()); entries != nil {
		t.Errorf("nil table should produce no entries, got %v", entries)
	}
}

func TestExpandScheduleInclusiveRange(t *testing.T) {
	entries := []models.ScheduleEntry{
		{
			Start:       day(t, "2024-03-01"),
			End:         day(t, "2024-03-02"),
			CreativeIDs: []string{"abc12345678"},
		},
	}

	activation := ExpandSchedule(entries)
	if len(activation) != 2 {
		t.Fatalf("activation covers %d days, want 2", len(activation))
	}
	for _, d := range []string{"2024-03-01", "2024-03-02"} {
		if !activation[day(t, d)]["abc12345678"] {
			t.Errorf("creative missing from activation on %s", d)
		}
	}
	if _, ok := activation[day(t, "2024-03-03")]; ok {
		t.Error("activation must not extend past the end date")
	}
	if _, ok := activation[day(t, "2024-02-29")]; ok {
		t.Error("activation must not extend before the start date")
	}
}

func TestExpandScheduleUnionsOverlappingEntries(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Start: day(t, "2024-03-01"), End: day(t, "2024-03-03"), CreativeIDs: []string{"aaa11111111"}},
		{Start: day(t, "2024-03-02"), End: day(t, "2024-03-02"), CreativeIDs: []string{"bbb22222222"}},
		{Start: day(t, "2024-03-02"), End: day(t, "2024-03-02")}, // no creatives
	}

	activation := ExpandSchedule(entries)
	overlap := activation[day(t, "2024-03-02")]
	if len(overlap) != 2 || !overlap["aaa11111111"] || !overlap["bbb22222222"] {
		t.Errorf("overlap day set = %v, want union of both entries", overlap)
	}
	if len(activation[day(t, "2024-03-01")]) != 1 {
		t.Errorf("non-overlap day should hold a single creative")
	}
}
