package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"adlens/internal/models"
)

// ArtifactStore lays out and persists one brand's run artifacts:
//
//	<root>/<brand>/analysis/<video_id>.json
//	<root>/<brand>/metrics.json
//	<root>/<brand>/master_analysis.csv
//	<root>/<brand>/creative_mix_performance.csv
//	<root>/<brand>/final_report.html
//
// Every artifact is disposable and fully regenerated on each run; only
// analysis documents act as a cache between runs.
type ArtifactStore struct {
	brandDir string
}

func NewArtifactStore(root, brand string) (*ArtifactStore, error) {
	brandDir := filepath.Join(root, brand)
	if err := os.MkdirAll(filepath.Join(brandDir, "analysis"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directories: %w", err)
	}
	return &ArtifactStore{brandDir: brandDir}, nil
}

func (s *ArtifactStore) AnalysisDir() string {
	return filepath.Join(s.brandDir, "analysis")
}

func (s *ArtifactStore) RecordsCSVPath() string {
	return filepath.Join(s.brandDir, "master_analysis.csv")
}

func (s *ArtifactStore) MergedCSVPath() string {
	return filepath.Join(s.brandDir, "creative_mix_performance.csv")
}

func (s *ArtifactStore) ReportPath() string {
	return filepath.Join(s.brandDir, "final_report.html")
}

func (s *ArtifactStore) analysisPath(videoID string) string {
	return filepath.Join(s.AnalysisDir(), videoID+".json")
}

// LoadAnalysis returns the cached analysis for a video, or nil when none
// exists yet.
func (s *ArtifactStore) LoadAnalysis(videoID string) (*models.VideoAnalysis, error) {
	data, err := os.ReadFile(s.analysisPath(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached analysis for %s: %w", videoID, err)
	}

	var doc models.VideoAnalysis
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cached analysis for %s is malformed: %w", videoID, err)
	}
	return &doc, nil
}

// SaveAnalysis persists one analysis document so later runs skip the
// model call.
func (s *ArtifactStore) SaveAnalysis(videoID string, doc *models.VideoAnalysis) error {
	return s.writeJSON(s.analysisPath(videoID), doc)
}

// SaveMetrics persists the fetched per-video metrics map.
func (s *ArtifactStore) SaveMetrics(metrics map[string]models.VideoMetrics) error {
	return s.writeJSON(s.metricsPath(), metrics)
}

// LoadMetrics returns the persisted metrics map, or nil when no fetch
// has run yet.
func (s *ArtifactStore) LoadMetrics() (map[string]models.VideoMetrics, error) {
	data, err := os.ReadFile(s.metricsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metrics: %w", err)
	}

	var metrics map[string]models.VideoMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("metrics file is malformed: %w", err)
	}
	return metrics, nil
}

func (s *ArtifactStore) metricsPath() string {
	return filepath.Join(s.brandDir, "metrics.json")
}

// SaveReport writes the final HTML report.
func (s *ArtifactStore) SaveReport(html string) error {
	if err := os.WriteFile(s.ReportPath(), []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (s *ArtifactStore) writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
