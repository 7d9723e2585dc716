package processing

import (
	"sort"

	"adlens/internal/models"
)

// ComputeDailyMix classifies each day's active creatives and derives the
// day's category percentages. Days with an empty activation set have no
// defined mix and are omitted. Creatives scheduled but absent from the
// record store still count toward the denominator without incrementing
// any category, which dilutes the percentages.
//
// Rows come back sorted by day, with each row's ActiveVideoIDs in sorted
// identifier order so serialized output is reproducible.
func ComputeDailyMix(activation models.DailyActivation, records map[string]models.VideoRecord, classifier *Classifier) []models.DailyMixRow {
	var rows []models.DailyMixRow
	for day, ids := range activation {
		if len(ids) == 0 {
			continue
		}

		active := make([]string, 0, len(ids))
		for id := range ids {
			active = append(active, id)
		}
		sort.Strings(active)

		var emotional, rational, product, brand int
		for _, id := range active {
			rec, ok := records[id]
			if !ok {
				continue // unclassified, contributes only to the count
			}
			if classifier.Matches(CategoryEmotional, rec.Tone) {
				emotional++
			}
			if classifier.Matches(CategoryRational, rec.Tone) {
				rational++
			}
			if classifier.Matches(CategoryProduct, rec.Focus) {
				product++
			}
			if classifier.Matches(CategoryBrand, rec.Focus) {
				brand++
			}
		}

		total := float64(len(active))
		rows = append(rows, models.DailyMixRow{
			Day:             day,
			ActiveCreatives: len(active),
			EmotionalPct:    float64(emotional) / total * 100,
			RationalPct:     float64(rational) / total * 100,
			ProductPct:      float64(product) / total * 100,
			BrandPct:        float64(brand) / total * 100,
			ActiveVideoIDs:  active,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows
}
