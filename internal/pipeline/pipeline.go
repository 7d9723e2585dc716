// Package pipeline sequences the full run: acquisition, multimodal
// analysis, the correlation engine, and reporting. Stages hand each
// other typed in-memory values; files are written only as the external
// artifacts other tools consume.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"adlens/internal/acquisition"
	"adlens/internal/models"
	"adlens/internal/processing"
	"adlens/internal/report"
	"adlens/internal/videoid"
	"adlens/shared/ai"
	"adlens/shared/config"
	"adlens/shared/email"
	"adlens/shared/storage"
)

// Options identifies one brand run and its input snapshots. The
// performance and schedule paths are optional; without both, the run
// covers the portfolio only.
type Options struct {
	Brand        string
	URLsPath     string
	PerfPath     string
	SchedulePath string
}

type Pipeline struct {
	cfg  *config.Config
	opts Options

	store      *storage.ArtifactStore
	analyzer   *ai.Analyzer
	reporter   *report.Generator
	metrics    *acquisition.MetricsFetcher
	emailer    *email.Sender
	classifier *processing.Classifier

	// pause between uncached model calls
	analysisDelay time.Duration
}

func New(cfg *config.Config, opts Options) *Pipeline {
	return &Pipeline{
		cfg:           cfg,
		opts:          opts,
		analysisDelay: 2 * time.Second,
	}
}

func (p *Pipeline) Name() string {
	return fmt.Sprintf("Creative Analyzer (%s)", p.opts.Brand)
}

func (p *Pipeline) Initialize() error {
	log.Printf("Initializing %s...", p.Name())

	if p.opts.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if p.opts.URLsPath == "" {
		return fmt.Errorf("a URLs file is required")
	}

	if p.store == nil {
		store, err := storage.NewArtifactStore(p.cfg.OutputDir, p.opts.Brand)
		if err != nil {
			return fmt.Errorf("failed to create artifact store: %w", err)
		}
		p.store = store
	}

	if p.analyzer == nil {
		analyzer, err := ai.NewAnalyzer(p.cfg)
		if err != nil {
			return fmt.Errorf("failed to create AI analyzer: %w", err)
		}
		p.analyzer = analyzer
		log.Println("AI analyzer initialized")
	}

	if p.reporter == nil {
		reporter, err := report.NewGenerator(p.cfg)
		if err != nil {
			return fmt.Errorf("failed to create report generator: %w", err)
		}
		p.reporter = reporter
	}

	if p.metrics == nil && p.cfg.YouTube.APIKey != "" {
		fetcher, err := acquisition.NewMetricsFetcher(context.Background(), p.cfg.YouTube.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create metrics fetcher: %w", err)
		}
		p.metrics = fetcher
		log.Println("Metrics fetcher initialized")
	}

	if p.emailer == nil && p.cfg.Email.Enabled() {
		p.emailer = email.NewSender(&p.cfg.Email)
		log.Println("Email sender initialized")
	}

	if p.classifier == nil {
		p.classifier = processing.NewClassifier(p.cfg.Categories)
	}

	return nil
}

// RunOnce executes the full pipeline and returns a run summary.
func (p *Pipeline) RunOnce(ctx context.Context) (string, error) {
	urls, err := loadURLs(p.opts.URLsPath)
	if err != nil {
		return "", err
	}
	log.Printf("Starting pipeline for %s (%d videos)", p.opts.Brand, len(urls))

	ids := p.resolveIDs(urls)

	p.fetchMetrics(ctx, ids)

	analyzed, cached, err := p.analyzeVideos(ctx, ids)
	if err != nil {
		return "", err
	}

	records := processing.LoadRecords(p.store.AnalysisDir())
	if len(records) == 0 {
		log.Println("No analysis records available, skipping correlation and reporting")
		return "no analysis records", nil
	}
	if err := storage.WriteRecordsCSV(p.store.RecordsCSVPath(), records); err != nil {
		return "", fmt.Errorf("failed to write record store: %w", err)
	}

	merged, insights := p.correlate(records)

	portfolio := processing.Summarize(records)

	if err := p.report(ctx, merged, insights, portfolio); err != nil {
		return "", err
	}

	summary := fmt.Sprintf("analyzed %d videos (%d cached), %d correlated days",
		analyzed, cached, len(merged))
	log.Printf("Pipeline complete: %s", summary)
	return summary, nil
}

// resolveIDs maps each URL to its video ID, dropping URLs that carry no
// identifier. Order is preserved and duplicates collapse to the first
// occurrence.
func (p *Pipeline) resolveIDs(urls []string) map[string]string {
	ids := make(map[string]string, len(urls))
	for _, url := range urls {
		id, ok := videoid.Extract(url)
		if !ok {
			log.Printf("Warning: no video ID in %s, skipping", url)
			continue
		}
		if _, seen := ids[id]; !seen {
			ids[id] = url
		}
	}
	return ids
}

func (p *Pipeline) fetchMetrics(ctx context.Context, ids map[string]string) {
	if p.metrics == nil {
		log.Println("No YouTube API key configured, skipping metrics fetch")
		return
	}

	idList := make([]string, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}

	metrics := p.metrics.Fetch(ctx, idList)
	if len(metrics) == 0 {
		return
	}
	if err := p.store.SaveMetrics(metrics); err != nil {
		log.Printf("Warning: failed to save metrics: %v", err)
	}
	log.Printf("Fetched metrics for %d/%d videos", len(metrics), len(ids))
}

// analyzeVideos runs the multimodal analysis for every video without a
// cached document. A single failed analysis is logged and skipped;
// losing more than half the batch aborts the run.
func (p *Pipeline) analyzeVideos(ctx context.Context, ids map[string]string) (analyzed, cached int, err error) {
	var failures int
	i := 0
	for id, url := range ids {
		i++

		doc, err := p.store.LoadAnalysis(id)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		if doc != nil {
			cached++
			continue
		}

		log.Printf("Analyzing video %d/%d: %s", i, len(ids), id)
		doc, err = p.analyzer.AnalyzeVideo(ctx, id, url)
		if err != nil {
			log.Printf("Warning: Failed to analyze video %s: %v", id, err)
			failures++
			if failures > len(ids)/2 {
				return analyzed, cached, fmt.Errorf("too many analysis failures (%d/%d), stopping", failures, i)
			}
			continue
		}
		if err := p.store.SaveAnalysis(id, doc); err != nil {
			return analyzed, cached, fmt.Errorf("failed to cache analysis: %w", err)
		}
		analyzed++

		select {
		case <-ctx.Done():
			return analyzed, cached, ctx.Err()
		case <-time.After(p.analysisDelay):
		}
	}
	return analyzed, cached, nil
}

// correlate runs the core engine when both snapshots are present. Any
// missing input degrades to no correlation data, never to an error.
func (p *Pipeline) correlate(records []models.VideoRecord) ([]models.MergedDailyRow, *models.Insights) {
	if p.opts.PerfPath == "" || p.opts.SchedulePath == "" {
		log.Println("Performance or schedule snapshot not provided, skipping correlation")
		return nil, nil
	}

	perfTable, err := storage.LoadTable(p.opts.PerfPath)
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil, nil
	}
	schedTable, err := storage.LoadTable(p.opts.SchedulePath)
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil, nil
	}
	if perfTable == nil || schedTable == nil {
		log.Println("Missing input files for correlation")
		return nil, nil
	}

	entries := processing.ParseScheduleEntries(schedTable, processing.ScheduleOptions{
		StartColumn: p.cfg.Schedule.StartColumn,
		EndColumn:   p.cfg.Schedule.EndColumn,
		LinkKeyword: p.cfg.Schedule.LinkKeyword,
		DateLayout:  p.cfg.Schedule.DateLayout,
	})
	activation := processing.ExpandSchedule(entries)
	mix := processing.ComputeDailyMix(activation, processing.RecordIndex(records), p.classifier)

	perf := processing.NormalizePerformance(perfTable, processing.PerformanceOptions{
		DateColumn:   p.cfg.Performance.DateColumn,
		MetricColumn: p.cfg.Performance.MetricColumn,
	})

	merged := processing.JoinPerformance(perf, mix)
	if len(merged) == 0 {
		log.Println("No overlapping days between mix and KPI series")
		return nil, nil
	}

	if err := storage.WriteMergedCSV(p.store.MergedCSVPath(), merged); err != nil {
		log.Printf("Warning: failed to write merged table: %v", err)
	}

	return merged, processing.TopBottomInsights(merged, p.cfg.Insights.Window)
}

func (p *Pipeline) report(ctx context.Context, merged []models.MergedDailyRow, insights *models.Insights, portfolio *models.PortfolioSummary) error {
	input := &report.Input{
		PortfolioSummary: portfolio,
		Insights:         insights,
		Merged:           merged,
		VideoDetails:     p.headlineDetails(insights),
	}
	input.VideoMetrics = p.loadMetrics()

	html, err := p.reporter.Generate(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if err := p.store.SaveReport(html); err != nil {
		return err
	}
	log.Printf("Report written to %s", p.store.ReportPath())

	if p.emailer != nil {
		if err := p.emailer.SendReport(p.opts.Brand, html); err != nil {
			log.Printf("Warning: failed to send report email: %v", err)
		} else {
			log.Println("Report email sent")
		}
	}
	return nil
}

// headlineDetails loads the full analysis documents of the top/bottom
// videos so the report can quote them.
func (p *Pipeline) headlineDetails(insights *models.Insights) map[string]*models.VideoAnalysis {
	if insights == nil {
		return nil
	}

	details := make(map[string]*models.VideoAnalysis)
	for _, scores := range [][]models.VideoNetScore{insights.TopPerformers, insights.BottomPerformers} {
		for _, s := range scores {
			if _, ok := details[s.VideoID]; ok {
				continue
			}
			doc, err := p.store.LoadAnalysis(s.VideoID)
			if err != nil || doc == nil {
				continue
			}
			details[s.VideoID] = doc
		}
	}
	return details
}

func (p *Pipeline) loadMetrics() map[string]models.VideoMetrics {
	metrics, err := p.store.LoadMetrics()
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	return metrics
}

// loadURLs reads the curated URL list: one URL per line, blank lines and
// # comments ignored.
func loadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URLs file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URLs file: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("URLs file %s contains no URLs", path)
	}
	return urls, nil
}
