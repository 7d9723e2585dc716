package processing

import (
	"sort"

	"adlens/internal/models"
)

// Summarize computes aggregate distributions over the full record store,
// independent of any schedule or KPI data. Given the same records it
// always produces the same summary; top-5 ties keep first-encountered
// order.
func Summarize(records []models.VideoRecord) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{
		TotalVideos:       len(records),
		FocusDistribution: map[string]float64{},
		ToneDistribution:  map[string]float64{},
	}
	if len(records) == 0 {
		return summary
	}

	focus := newValueCounter()
	tone := newValueCounter()
	scenarios := newValueCounter()
	occasions := newValueCounter()
	for _, r := range records {
		focus.add(r.Focus)
		tone.add(r.Tone)
		scenarios.add(r.Scenario)
		occasions.add(r.Occasion)
	}

	// Normalize per axis over observed values so each distribution sums
	// to 1.0 even when some records leave the field blank.
	for _, vc := range focus.ordered() {
		summary.FocusDistribution[vc.Value] = float64(vc.Count) / float64(focus.total)
	}
	for _, vc := range tone.ordered() {
		summary.ToneDistribution[vc.Value] = float64(vc.Count) / float64(tone.total)
	}
	summary.TopScenarios = topN(scenarios, 5)
	summary.TopOccasions = topN(occasions, 5)

	return summary
}

// valueCounter tallies categorical values while remembering the order
// each distinct value was first seen.
type valueCounter struct {
	counts map[string]int
	order  []string
	total  int
}

func newValueCounter() *valueCounter {
	return &valueCounter{counts: make(map[string]int)}
}

func (v *valueCounter) add(value string) {
	if value == "" {
		return
	}
	if _, ok := v.counts[value]; !ok {
		v.order = append(v.order, value)
	}
	v.counts[value]++
	v.total++
}

func (v *valueCounter) ordered() []models.ValueCount {
	out := make([]models.ValueCount, 0, len(v.order))
	for _, value := range v.order {
		out = append(out, models.ValueCount{Value: value, Count: v.counts[value]})
	}
	return out
}

func topN(v *valueCounter, n int) []models.ValueCount {
	ranked := v.ordered()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
