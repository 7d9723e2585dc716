package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"adlens/internal/models"
)

// WriteRecordsCSV writes the flattened per-video record store, one row
// per video, optional ABCD scores as separate named columns. An empty
// store writes nothing and removes no prior file.
func WriteRecordsCSV(path string, records []models.VideoRecord) error {
	if len(records) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"video_id", "url", "tone", "focus", "scenario", "consumption_occasion", "visual_analysis", "attention_notes"}
	for _, dim := range models.ScoreDimensions {
		header = append(header, "score_"+dim)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range records {
		row := []string{r.VideoID, r.URL, r.Tone, r.Focus, r.Scenario, r.Occasion, r.VisualAnalysis, r.AttentionNotes}
		for _, dim := range models.ScoreDimensions {
			if v, ok := r.Scores[dim]; ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMergedCSV writes the merged daily table consumed by reporting and
// visualization: KPI + mix percentages + the comma-joined active list.
func WriteMergedCSV(path string, merged []models.MergedDailyRow) error {
	if len(merged) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"day", "PerformanceMetric", "active_creatives_count", "mix_emotional_pct", "mix_rational_pct", "mix_product_pct", "mix_brand_pct", "active_video_ids"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, m := range merged {
		row := []string{
			m.Day.Format("2006-01-02"),
			strconv.FormatFloat(m.Metric, 'f', -1, 64),
			strconv.Itoa(m.ActiveCreatives),
			strconv.FormatFloat(m.EmotionalPct, 'f', -1, 64),
			strconv.FormatFloat(m.RationalPct, 'f', -1, 64),
			strconv.FormatFloat(m.ProductPct, 'f', -1, 64),
			strconv.FormatFloat(m.BrandPct, 'f', -1, 64),
			strings.Join(m.ActiveVideoIDs, ","),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
