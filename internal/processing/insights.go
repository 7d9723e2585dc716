package processing

import (
	"sort"

	"adlens/internal/models"
)

// DefaultInsightWindow is the number of days taken from each tail of the
// KPI-ranked merged table.
const DefaultInsightWindow = 20

const headlineSize = 5

// TopBottomInsights ranks merged daily rows by KPI descending, takes the
// top and bottom n days, and scores each video by how often it was active
// in each tail: net score = top appearances - bottom appearances.
//
// When fewer than 2n rows exist the tails overlap; that is accepted. The
// headline exposes the five best and five worst net scores.
func TopBottomInsights(merged []models.MergedDailyRow, n int) *models.Insights {
	if len(merged) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultInsightWindow
	}

	ranked := make([]models.MergedDailyRow, len(merged))
	copy(ranked, merged)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Metric > ranked[j].Metric })

	if n > len(ranked) {
		n = len(ranked)
	}
	topCounts := tallyActive(ranked[:n])
	botCounts := tallyActive(ranked[len(ranked)-n:])

	// Preserve first-encountered order for deterministic tie handling.
	var ids []string
	seen := make(map[string]bool)
	for _, counts := range []map[string]int{topCounts, botCounts} {
		for _, row := range ranked {
			for _, id := range row.ActiveVideoIDs {
				if _, tallied := counts[id]; tallied && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}

	scores := make([]models.VideoNetScore, 0, len(ids))
	for _, id := range ids {
		scores = append(scores, models.VideoNetScore{
			VideoID:  id,
			NetScore: topCounts[id] - botCounts[id],
		})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].NetScore > scores[j].NetScore })

	insights := &models.Insights{}
	if len(scores) <= headlineSize {
		insights.TopPerformers = scores
		insights.BottomPerformers = scores
	} else {
		insights.TopPerformers = scores[:headlineSize]
		insights.BottomPerformers = scores[len(scores)-headlineSize:]
	}
	return insights
}

// tallyActive counts per-video appearances across the given days. Rows
// with no active list are skipped, not treated as an error.
func tallyActive(rows []models.MergedDailyRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		for _, id := range row.ActiveVideoIDs {
			if id == "" {
				continue
			}
			counts[id]++
		}
	}
	return counts
}
