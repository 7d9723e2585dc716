package processing

import (
	"testing"

	"adlens/internal/models"
)

func TestComputeDailyMix(t *testing.T) {
	classifier := NewClassifier(DefaultKeywords())
	records := RecordIndex([]models.VideoRecord{
		{VideoID: "emo00000001", Tone: "Emocional", Focus: "Marca"},
		{VideoID: "rat00000001", Tone: "Racional", Focus: "Produto"},
	})

	activation := models.DailyActivation{
		day(t, "2024-03-01"): {"emo00000001": true, "rat00000001": true},
	}

	rows := ComputeDailyMix(activation, records, classifier)
	if len(rows) != 1 {
		t.Fatalf("got %d mix rows, want 1", len(rows))
	}

	row := rows[0]
	if row.ActiveCreatives != 2 {
		t.Errorf("ActiveCreatives = %d, want 2", row.ActiveCreatives)
	}
	if row.EmotionalPct != 50.0 || row.RationalPct != 50.0 {
		t.Errorf("tone mix = %.1f/%.1f, want 50.0/50.0", row.EmotionalPct, row.RationalPct)
	}
	if row.BrandPct != 50.0 || row.ProductPct != 50.0 {
		t.Errorf("focus mix = %.1f/%.1f, want 50.0/50.0", row.BrandPct, row.ProductPct)
	}
	if len(row.ActiveVideoIDs) != 2 || row.ActiveVideoIDs[0] != "emo00000001" {
		t.Errorf("ActiveVideoIDs = %v, want sorted identifier order", row.ActiveVideoIDs)
	}
}

func TestComputeDailyMixUnclassifiedDilutes(t *testing.T) {
	classifier := NewClassifier(DefaultKeywords())
	records := RecordIndex([]models.VideoRecord{
		{VideoID: "emo00000001", Tone: "Emocional"},
	})

	// Second creative is scheduled but absent from the record store.
	activation := models.DailyActivation{
		day(t, "2024-03-01"): {"emo00000001": true, "ghost0000001": true},
	}

	rows := ComputeDailyMix(activation, records, classifier)
	if len(rows) != 1 {
		t.Fatalf("got %d mix rows, want 1", len(rows))
	}
	if rows[0].ActiveCreatives != 2 {
		t.Errorf("unknown creative must still count toward the denominator")
	}
	if rows[0].EmotionalPct != 50.0 {
		t.Errorf("EmotionalPct = %.1f, want 50.0 (diluted by unclassified)", rows[0].EmotionalPct)
	}
}

func TestComputeDailyMixSkipsEmptyDays(t *testing.T) {
	activation := models.DailyActivation{
		day(t, "2024-03-01"): {},
	}
	rows := ComputeDailyMix(activation, nil, NewClassifier(DefaultKeywords()))
	if len(rows) != 0 {
		t.Errorf("a day with zero active creatives has no mix, got %d rows", len(rows))
	}
}

func TestComputeDailyMixBounds(t *testing.T) {
	classifier := NewClassifier(DefaultKeywords())
	records := RecordIndex([]models.VideoRecord{
		{VideoID: "a0000000001", Tone: "Emocional", Focus: "Produto"},
		{VideoID: "b0000000002", Tone: "Emocional", Focus: "Marca"},
		{VideoID: "c0000000003", Tone: "Racional"},
	})
	activation := models.DailyActivation{
		day(t, "2024-03-01"): {"a0000000001": true, "b0000000002": true, "c0000000003": true},
		day(t, "2024-03-02"): {"b0000000002": true},
	}

	for _, row := range ComputeDailyMix(activation, records, classifier) {
		if row.ActiveCreatives != len(row.ActiveVideoIDs) {
			t.Errorf("%s: count %d != |active set| %d", row.Day.Format("2006-01-02"), row.ActiveCreatives, len(row.ActiveVideoIDs))
		}
		for name, pct := range map[string]float64{
			"emotional": row.EmotionalPct,
			"rational":  row.RationalPct,
			"product":   row.ProductPct,
			"brand":     row.BrandPct,
		} {
			if pct < 0 || pct > 100 {
				t.Errorf("%s: %s pct %.2f out of [0,100]", row.Day.Format("2006-01-02"), name, pct)
			}
		}
	}
}

func TestComputeDailyMixSortedByDay(t *testing.T) {
	activation := models.DailyActivation{
		day(t, "2024-03-05"): {"a0000000001": true},
		day(t, "2024-03-01"): {"a0000000001": true},
		day(t, "2024-03-03"): {"a0000000001": true},
	}
	rows := ComputeDailyMix(activation, nil, NewClassifier(DefaultKeywords()))
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Day.Before(rows[i].Day) {
			t.Fatalf("rows not sorted by day: %v before %v", rows[i-1].Day, rows[i].Day)
		}
	}
}
