// Package report synthesizes the final narrative HTML report from the
// pipeline's derived structures. The prose is model-generated; the CSS
// skeleton and the methodology appendix are fixed so every report reads
// the same way.
package report

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

// Input carries everything the report needs. Correlation-dependent
// fields may be nil when no correlation data exists; the report then
// covers the portfolio only.
type Input struct {
	PortfolioSummary *models.PortfolioSummary
	Insights         *models.Insights
	Merged           []models.MergedDailyRow
	VideoMetrics     map[string]models.VideoMetrics
	// VideoDetails holds the full analysis documents of the headline
	// top/bottom videos, keyed by video ID.
	VideoDetails map[string]*models.VideoAnalysis
}

type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(cfg *config.Config) (*Generator, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Generator{client: client, model: cfg.AI.Model}, nil
}

// Generate produces the complete report HTML.
func (g *Generator) Generate(ctx context.Context, input *Input) (string, error) {
	prompt, err := buildPrompt(input)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	html := stripCodeFence(result.Text())
	if html == "" {
		return "", fmt.Errorf("empty report from model")
	}

	return injectAppendix(html), nil
}

func buildPrompt(input *Input) (string, error) {
	section := func(name string, v any) string {
		if v == nil {
			return fmt.Sprintf("%s: (no data)\n", name)
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			log.Printf("Warning: could not encode %s for the report prompt: %v", name, err)
			return fmt.Sprintf("%s: (no data)\n", name)
		}
		return fmt.Sprintf("%s:\n%s\n", name, data)
	}

	if input.PortfolioSummary == nil {
		return "", fmt.Errorf("report requires a portfolio summary")
	}

	var details []map[string]any
	for id, doc := range input.VideoDetails {
		entry := map[string]any{
			"video_id": id,
			"analysis": doc,
		}
		if m, ok := input.VideoMetrics[id]; ok {
			entry["secondary_metrics"] = map[string]any{
				"title": m.Title,
				"views": m.ViewCount,
				"likes": m.LikeCount,
			}
		}
		details = append(details, entry)
	}

	var b strings.Builder
	b.WriteString(`You are a senior brand strategy consultant. Write a DEEP strategic
report on creative effectiveness: analytical, detailed, visually clean.

--- INPUT DATA ---
`)
	b.WriteString(section("1. PORTFOLIO OVERVIEW", input.PortfolioSummary))
	b.WriteString(section("2. PERFORMANCE DRIVERS (daily mix vs KPI)", input.Merged))
	b.WriteString(section("3. TOP vs BOTTOM COMPARISON", input.Insights))
	b.WriteString(section("4. VIDEO DETAIL", details))
	b.WriteString(`
--- ANONYMIZATION RULES ---
- NEVER name the advertiser or the KPI product. Use "The Brand" and
  "Business KPI".

--- HTML STRUCTURE (MANDATORY) ---
Use this CSS in <head>:
` + reportCSS + `

--- REPORT CONTENT ---
1. Header: logo text "Strategic Insights", note "Strictly Confidential".
2. Title: "Final Report: Creative Effectiveness".
3. Executive summary: high-impact strategic recap.
4. Stats grid: 4 cards with real data (brand mix, tone mix, etc).
5. Brand strategy diagnosis: distribution and evolution analysis.
6. Champions (why they work): analysis + detailed table.
7. Underperformers (where they failed): analysis + detailed table.
8. Strategic recommendations: next steps.
9. Appendix: ` + appendixPlaceholder + `

Output ONLY the complete HTML document.`)

	return b.String(), nil
}

func stripCodeFence(html string) string {
	html = strings.TrimSpace(html)
	if strings.HasPrefix(html, "```") {
		html = strings.TrimPrefix(html, "```html")
		html = strings.TrimPrefix(html, "```")
		html = strings.TrimSuffix(strings.TrimSpace(html), "```")
	}
	return strings.TrimSpace(html)
}

const appendixPlaceholder = "[TECHNICAL_APPENDIX_PLACEHOLDER]"

// injectAppendix replaces the appendix placeholder with the fixed
// methodology section, falling back to appending before </body> when the
// model dropped the placeholder.
func injectAppendix(html string) string {
	if strings.Contains(html, appendixPlaceholder) {
		return strings.Replace(html, appendixPlaceholder, technicalAppendix, 1)
	}
	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", technicalAppendix+"</body>", 1)
	}
	return html + technicalAppendix
}

const reportCSS = `<style>
    :root { --brand-primary: #F40009; --dark-gray: #2b2b2b; --light-gray: #f4f4f4; --white: #ffffff; }
    body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; color: var(--dark-gray); line-height: 1.6; margin: 0; padding: 0; background-color: var(--light-gray); }
    .container { max-width: 1000px; margin: 0 auto; background: var(--white); padding: 40px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
    header { border-bottom: 3px solid var(--brand-primary); padding-bottom: 20px; margin-bottom: 40px; display: flex; justify-content: space-between; align-items: center; }
    .logo { font-weight: bold; font-size: 24px; color: var(--brand-primary); text-transform: uppercase; letter-spacing: 2px; }
    .confidential { font-size: 12px; color: #999; text-transform: uppercase; }
    h1 { font-size: 32px; margin-bottom: 10px; font-weight: 700; }
    h2 { font-size: 22px; color: var(--brand-primary); margin-top: 30px; border-left: 4px solid var(--brand-primary); padding-left: 15px; text-transform: uppercase; }
    h3 { font-size: 18px; color: var(--dark-gray); margin-top: 20px; }
    .executive-summary { background-color: #fff8f8; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-bottom: 30px; }
    .stat-card { background: var(--light-gray); padding: 20px; border-radius: 8px; text-align: center; }
    .stat-value { display: block; font-size: 28px; font-weight: bold; color: var(--brand-primary); }
    .stat-label { font-size: 14px; text-transform: uppercase; color: #666; }
    .insight-box { background: #fff; border: 1px solid #ddd; padding: 15px; border-radius: 8px; margin-top: 10px; }
    .champion { border-top: 4px solid #28a745; }
    .underperformer { border-top: 4px solid #dc3545; }
    .badge { display: inline-block; padding: 4px 12px; border-radius: 20px; font-size: 12px; font-weight: bold; text-transform: uppercase; margin-bottom: 10px; }
    .badge-brand { background: #fee2e2; color: #991b1b; }
    .badge-product { background: #e0f2fe; color: #075985; }
    table { width: 100%; border-collapse: collapse; margin: 20px 0; background-color: #fff; box-shadow: 0 4px 8px rgba(0,0,0,0.1); border-radius: 8px; overflow: hidden; }
    th { background-color: var(--brand-primary); color: white; padding: 15px; text-align: left; }
    td { padding: 15px; border-bottom: 1px solid #eee; font-size: 14px; }
    .technical-appendix { margin-top: 50px; border-top: 1px solid #ddd; padding-top: 20px; }
</style>`

const technicalAppendix = `
    <section class="technical-appendix">
        <h2>Appendix: Technical Methodology</h2>
        <p>This report is produced by an automated AI pipeline that audits,
        analyzes and optimizes video creatives, connecting qualitative
        attributes (ABCD framework) with business metrics.</p>

        <h3>1. Acquisition &amp; Metrics</h3>
        <p>Public metadata (views, likes) provides reach context ("vanity
        metrics"), while success is defined by impact on the Business KPI.</p>

        <h3>2. Multimodal Analysis</h3>
        <p>Each video is processed by a multimodal model to extract
        structured data:
           <ul>
             <li><strong>ABCD framework:</strong> Attention, Branding, Connection, Direction.</li>
             <li><strong>Classification:</strong> Tone (Rational/Emotional) and Focus (Product/Brand).</li>
           </ul>
        </p>

        <h3>3. Creative Mix</h3>
        <p>Creatives are not analyzed in isolation. For every day of the
        flight schedule the pipeline computes the mix of attributes among
        active creatives; that daily mix is what correlates with the KPI.</p>

        <h3>4. Attribution &amp; Correlation</h3>
        <p>The creative-mix time series is joined with the KPI series and
        each video receives a <strong>Net Score</strong>: its frequency on
        high-performance days minus its frequency on low-performance days.</p>
    </section>
`
