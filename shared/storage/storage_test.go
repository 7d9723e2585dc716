package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"adlens/internal/models"
)

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sched.csv")
	contents := "Início,Fim,Link Criativo\n01/03/2024,02/03/2024,https://youtu.be/abc12345678\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "Início" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	if table.ColumnIndex("Fim") != 1 {
		t.Errorf("ColumnIndex(Fim) = %d, want 1", table.ColumnIndex("Fim"))
	}
	if table.ColumnIndex("missing") != -1 {
		t.Error("ColumnIndex of absent column should be -1")
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	table, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if table != nil {
		t.Errorf("missing file should yield a nil table, got %+v", table)
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master_analysis.csv")
	records := []models.VideoRecord{
		{
			VideoID:  "abc12345678",
			URL:      "https://youtu.be/abc12345678",
			Tone:     "Emocional",
			Focus:    "Marca",
			Scenario: "Casa",
			Occasion: "Almoço",
			Scores:   map[string]float64{"attention": 8, "branding": 6.5},
		},
		{VideoID: "def12345678", Tone: "Racional"},
	}

	if err := WriteRecordsCSV(path, records); err != nil {
		t.Fatalf("WriteRecordsCSV failed: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("re-reading records CSV failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	scoreCol := table.ColumnIndex("score_attention")
	if scoreCol < 0 {
		t.Fatalf("score columns missing from header %v", table.Headers)
	}
	if got := table.Rows[0][scoreCol]; got != "8" {
		t.Errorf("score_attention = %q, want 8", got)
	}
	if got := table.Rows[1][scoreCol]; got != "" {
		t.Errorf("record without scores should leave score columns empty, got %q", got)
	}
}

func TestWriteRecordsCSVEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master_analysis.csv")
	if err := WriteRecordsCSV(path, nil); err != nil {
		t.Fatalf("empty store should be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty store must not create a file")
	}
}

func TestWriteMergedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creative_mix_performance.csv")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	merged := []models.MergedDailyRow{
		{
			DailyMixRow: models.DailyMixRow{
				Day:             day,
				ActiveCreatives: 2,
				EmotionalPct:    50,
				RationalPct:     50,
				ActiveVideoIDs:  []string{"abc12345678", "def12345678"},
			},
			Metric: 12.5,
		},
	}

	if err := WriteMergedCSV(path, merged); err != nil {
		t.Fatalf("WriteMergedCSV failed: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("re-reading merged CSV failed: %v", err)
	}
	idCol := table.ColumnIndex("active_video_ids")
	if got := table.Rows[0][idCol]; got != "abc12345678,def12345678" {
		t.Errorf("active_video_ids = %q, want comma-joined sorted IDs", got)
	}
	if got := table.Rows[0][table.ColumnIndex("day")]; got != "2024-03-01" {
		t.Errorf("day = %q, want 2024-03-01", got)
	}
}

func TestArtifactStoreAnalysisRoundTrip(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir(), "TestBrand")
	if err != nil {
		t.Fatalf("NewArtifactStore failed: %v", err)
	}

	if doc, err := store.LoadAnalysis("abc12345678"); err != nil || doc != nil {
		t.Fatalf("cache miss should be (nil, nil), got (%v, %v)", doc, err)
	}

	saved := &models.VideoAnalysis{
		Metadata: models.AnalysisMetadata{URL: "https://youtu.be/abc12345678"},
		Tone:     "Emocional",
		Scores:   map[string]float64{"attention": 9},
	}
	if err := store.SaveAnalysis("abc12345678", saved); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	loaded, err := store.LoadAnalysis("abc12345678")
	if err != nil {
		t.Fatalf("LoadAnalysis failed: %v", err)
	}
	if loaded == nil || loaded.Tone != "Emocional" || loaded.Scores["attention"] != 9 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}

	if !strings.HasSuffix(store.AnalysisDir(), filepath.Join("TestBrand", "analysis")) {
		t.Errorf("unexpected analysis dir %s", store.AnalysisDir())
	}
}
