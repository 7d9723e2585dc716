package models

// VideoNetScore contrasts a video's presence on top- vs bottom-performing
// days. Negative means it showed up mostly on bad days.
type VideoNetScore struct {
	VideoID  string `json:"video_id"`
	NetScore int    `json:"net_score"`
}

// Insights is the headline top/bottom ranking.
type Insights struct {
	TopPerformers    []VideoNetScore `json:"top_performers"`
	BottomPerformers []VideoNetScore `json:"bottom_performers"`
}

// ValueCount is one value of a categorical field with its raw frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PortfolioSummary aggregates the full record store, independent of time.
// Distributions are fractions summing to 1.0 across observed values.
type PortfolioSummary struct {
	TotalVideos       int                `json:"total_videos"`
	FocusDistribution map[string]float64 `json:"focus_distribution"`
	ToneDistribution  map[string]float64 `json:"tone_distribution"`
	TopScenarios      []ValueCount       `json:"top_scenarios"`
	TopOccasions      []ValueCount       `json:"top_occasions"`
}
