package models

// VideoAnalysis is the raw qualitative analysis document produced for one
// video by the multimodal model. One JSON file per video in the analysis
// directory.
type VideoAnalysis struct {
	Metadata       AnalysisMetadata   `json:"metadata"`
	VisualAnalysis string             `json:"visual_analysis"`
	Transcript     string             `json:"transcript"`
	Attention      string             `json:"attention"`
	Branding       string             `json:"branding"`
	Connection     string             `json:"connection"`
	Direction      string             `json:"direction"`
	Occasion       string             `json:"consumption_occasion"`
	SensoryRitual  string             `json:"sensory_ritual"`
	ProductVariant string             `json:"product_variant"`
	PromoHook      string             `json:"promo_hook"`
	Scenario       string             `json:"scenario"`
	Focus          string             `json:"focus"`
	Tone           string             `json:"tone"`
	Scores         map[string]float64 `json:"abcd_score,omitempty"`
}

type AnalysisMetadata struct {
	URL string `json:"url"`
}

// ScoreDimensions is the fixed set of ABCD score columns, in output order.
var ScoreDimensions = []string{"attention", "branding", "connection", "direction"}

// VideoRecord is one flattened row of the per-video record store.
// Immutable once built; regenerated in full on every run.
type VideoRecord struct {
	VideoID        string
	URL            string
	Tone           string
	Focus          string
	Scenario       string
	Occasion       string
	VisualAnalysis string
	AttentionNotes string
	// Scores maps ABCD dimension name to a 0-10 value. Nil when the
	// source document predates scoring.
	Scores map[string]float64
}

// VideoMetrics holds public reach metadata for one video.
type VideoMetrics struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ViewCount    uint64 `json:"view_count"`
	LikeCount    int64  `json:"like_count"`
	CommentCount uint64 `json:"comment_count"`
}
