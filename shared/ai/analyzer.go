package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"adlens/internal/models"
	"adlens/shared/config"

	"google.golang.org/genai"
)

// Analyzer runs the multimodal qualitative scoring of one advertising
// video at a time and parses the model's JSON answer into a
// VideoAnalysis document.
type Analyzer struct {
	client *genai.Client
	model  string
}

func NewAnalyzer(cfg *config.Config) (*Analyzer, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Analyzer{
		client: client,
		model:  cfg.AI.Model,
	}, nil
}

// AnalyzeVideo sends the video at url to the model together with the
// ABCD scoring prompt and returns the parsed analysis document.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, videoID, url string) (*models.VideoAnalysis, error) {
	if url == "" {
		return nil, fmt.Errorf("video URL is required")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(analysisPrompt),
		genai.NewPartFromURI(url, "video/mp4"),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	temperature := float32(0.2)
	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze video %s: %w", videoID, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no analysis response received for video %s", videoID)
	}

	doc, err := a.parseAnalysisResponse(responseText, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis response for video %s: %w", videoID, err)
	}

	// The model sometimes echoes a placeholder URL; the caller's URL is
	// authoritative.
	doc.Metadata.URL = url
	return doc, nil
}

func (a *Analyzer) parseAnalysisResponse(response, videoID string) (*models.VideoAnalysis, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("no JSON found in response: %s", response)
	}
	jsonStr := response[startIdx : endIdx+1]

	var doc models.VideoAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		sanitized := sanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitized), &doc); sanitizedErr != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w (sanitized version also failed: %v)", err, sanitizedErr)
		}
		log.Printf("Warning: Had to sanitize malformed JSON for video %s", videoID)
	}

	if doc.Tone == "" && doc.Focus == "" {
		return nil, fmt.Errorf("analysis classification block is empty")
	}

	for dim, v := range doc.Scores {
		if v < 0 {
			doc.Scores[dim] = 0
		} else if v > 10 {
			doc.Scores[dim] = 10
		}
	}

	return &doc, nil
}

// sanitizeJSON fixes unescaped quotes inside single-line string values, a
// recurring defect of model-generated JSON.
func sanitizeJSON(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	var sanitizedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if colonIdx := strings.Index(line, ":"); colonIdx != -1 && strings.Contains(line, "\"") {
			beforeColon := line[:colonIdx+1]
			afterColon := strings.TrimSpace(line[colonIdx+1:])

			if strings.HasPrefix(afterColon, "\"") {
				lastQuoteIdx := strings.LastIndex(afterColon, "\"")
				if lastQuoteIdx > 0 {
					stringContent := afterColon[1:lastQuoteIdx]
					stringContent = strings.ReplaceAll(stringContent, "\\\"", "\"")
					stringContent = strings.ReplaceAll(stringContent, "\"", "\\\"")
					remainder := afterColon[lastQuoteIdx+1:]
					line = beforeColon + " \"" + stringContent + "\"" + remainder
				}
			}
		}

		sanitizedLines = append(sanitizedLines, line)
	}

	return strings.Join(sanitizedLines, "\n")
}

const analysisPrompt = `You are an expert video creative consultant. Analyze the provided
advertising video and answer strictly as a single JSON object.

Follow the Google Ads ABCD framework, plus consumption context:

1. ATTENTION: Does the video hook the viewer in the first 5 seconds?
   Is the pacing engaging, the framing tight, the visuals high-contrast?
2. BRANDING: Does the brand or product appear in the first 5 seconds?
   Is the brand mentioned in audio? Is brand presence continuous?
3. CONNECTION: Does the video humanize the story? Is the message clear?
   Which emotions are used (humor, surprise, curiosity)?
4. DIRECTION: Is there a clear, reinforced call to action?
5. CONSUMPTION CONTEXT:
   - Consumption occasion (e.g. lunch, dinner, party, snack, sports, work)
   - Sensory ritual (e.g. can opening, ice in glass, liquid close-up)
   - Product variant shown
   - Promotional hook (price, giveaway, collection, or none)
   - Scenario (e.g. home, restaurant, street, stadium)

CLASSIFICATION:
- Focus: "Produto" (product) or "Marca" (brand)?
- Tone: "Racional" (rational) or "Emocional" (emotional)?

Respond with valid JSON in exactly this structure:
{
  "metadata": { "url": "VIDEO_URL" },
  "visual_analysis": "detailed chronological description",
  "transcript": "full audio transcription",
  "attention": "detailed attention analysis",
  "branding": "branding analysis",
  "connection": "connection analysis",
  "direction": "direction (CTA) analysis",
  "consumption_occasion": "occasion classification",
  "sensory_ritual": "ritual description",
  "product_variant": "product identification",
  "promo_hook": "hook identification",
  "scenario": "scenario identification",
  "focus": "Produto/Marca",
  "tone": "Racional/Emocional",
  "abcd_score": { "attention": 0, "branding": 0, "connection": 0, "direction": 0 }
}

abcd_score values are integers from 0 to 10.`
