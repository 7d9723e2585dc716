package processing

import (
	"math"
	"testing"

	"adlens/internal/models"
)

func TestSummarizeDistributions(t *testing.T) {
	records := []models.VideoRecord{
		{VideoID: "a", Tone: "Emocional", Focus: "Marca", Scenario: "Casa", Occasion: "Almoço"},
		{VideoID: "b", Tone: "Emocional", Focus: "Produto", Scenario: "Rua", Occasion: "Festa"},
		{VideoID: "c", Tone: "Racional", Focus: "Produto", Scenario: "Casa", Occasion: "Almoço"},
		{VideoID: "d", Tone: "Racional", Focus: "Produto", Scenario: "Estádio", Occasion: "Esporte"},
	}

	summary := Summarize(records)
	if summary.TotalVideos != 4 {
		t.Errorf("TotalVideos = %d, want 4", summary.TotalVideos)
	}
	if got := summary.ToneDistribution["Emocional"]; got != 0.5 {
		t.Errorf("tone Emocional fraction = %v, want 0.5", got)
	}
	if got := summary.FocusDistribution["Produto"]; got != 0.75 {
		t.Errorf("focus Produto fraction = %v, want 0.75", got)
	}

	var sum float64
	for _, f := range summary.FocusDistribution {
		sum += f
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("focus distribution sums to %v, want 1.0", sum)
	}

	if summary.TopScenarios[0].Value != "Casa" || summary.TopScenarios[0].Count != 2 {
		t.Errorf("top scenario = %+v, want Casa/2", summary.TopScenarios[0])
	}
}

func TestSummarizeTieOrder(t *testing.T) {
	records := []models.VideoRecord{
		{VideoID: "a", Scenario: "Rua"},
		{VideoID: "b", Scenario: "Casa"},
		{VideoID: "c", Scenario: "Estádio"},
	}

	summary := Summarize(records)
	want := []string{"Rua", "Casa", "Estádio"}
	for i, vc := range summary.TopScenarios {
		if vc.Value != want[i] {
			t.Fatalf("tie order broken: got %v at %d, want %v", vc.Value, i, want[i])
		}
	}
}

func TestSummarizeTopFiveCap(t *testing.T) {
	records := []models.VideoRecord{
		{Occasion: "Almoço"}, {Occasion: "Jantar"}, {Occasion: "Festa"},
		{Occasion: "Lanche"}, {Occasion: "Esporte"}, {Occasion: "Trabalho"},
	}
	summary := Summarize(records)
	if len(summary.TopOccasions) != 5 {
		t.Errorf("TopOccasions length = %d, want 5", len(summary.TopOccasions))
	}
}

func TestSummarizeEmptyStore(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalVideos != 0 {
		t.Errorf("TotalVideos = %d, want 0", summary.TotalVideos)
	}
	if len(summary.ToneDistribution) != 0 || len(summary.TopScenarios) != 0 {
		t.Error("empty store should summarize to empty distributions")
	}
}
