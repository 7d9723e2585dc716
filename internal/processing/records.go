package processing

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"adlens/internal/models"
)

// LoadRecords reads every per-video analysis document under dir and
// flattens each into one VideoRecord. The video ID is the file name stem,
// which acquisition derives from the source URL, so the same URL always
// maps to the same record.
//
// A missing directory or a directory with no valid documents yields an
// empty store, not an error: downstream stages degrade to empty output.
// Individual documents that fail to parse are logged and skipped.
func LoadRecords(dir string) []models.VideoRecord {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: cannot read analysis directory %s: %v", dir, err)
		}
		return nil
	}

	var records []models.VideoRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", entry.Name(), err)
			continue
		}

		var doc models.VideoAnalysis
		if err := json.Unmarshal(data, &doc); err != nil {
			log.Printf("Warning: skipping malformed analysis %s: %v", entry.Name(), err)
			continue
		}

		records = append(records, FlattenAnalysis(strings.TrimSuffix(entry.Name(), ".json"), &doc))
	}

	// ReadDir order is already lexical; keep it explicit so the record
	// store is reproducible across platforms.
	sort.Slice(records, func(i, j int) bool { return records[i].VideoID < records[j].VideoID })

	return records
}

// FlattenAnalysis converts one analysis document into a flat record row.
// The optional ABCD score block is carried as named values per dimension;
// documents predating scoring leave Scores nil.
func FlattenAnalysis(videoID string, doc *models.VideoAnalysis) models.VideoRecord {
	rec := models.VideoRecord{
		VideoID:        videoID,
		URL:            doc.Metadata.URL,
		Tone:           doc.Tone,
		Focus:          doc.Focus,
		Scenario:       doc.Scenario,
		Occasion:       doc.Occasion,
		VisualAnalysis: doc.VisualAnalysis,
		AttentionNotes: doc.Attention,
	}
	if len(doc.Scores) > 0 {
		rec.Scores = make(map[string]float64, len(doc.Scores))
		for dim, v := range doc.Scores {
			rec.Scores[dim] = v
		}
	}
	return rec
}

// RecordIndex keys a record slice by video ID for schedule joins.
func RecordIndex(records []models.VideoRecord) map[string]models.VideoRecord {
	idx := make(map[string]models.VideoRecord, len(records))
	for _, r := range records {
		idx[r.VideoID] = r
	}
	return idx
}
