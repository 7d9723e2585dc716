// Package acquisition fetches public reach metadata for the analyzed
// videos. Reach numbers are context for the report only; success is
// defined by the business KPI, not by views.
package acquisition

import (
	"context"
	"fmt"
	"log"
	"strings"

	"adlens/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// videos.list accepts at most 50 IDs per call.
const maxIDsPerCall = 50

type MetricsFetcher struct {
	service *youtube.Service
}

// NewMetricsFetcher builds a fetcher over the YouTube Data API. Only
// public video metadata is read, so an API key is sufficient.
func NewMetricsFetcher(ctx context.Context, apiKey string) (*MetricsFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &MetricsFetcher{service: service}, nil
}

// Fetch returns metrics keyed by video ID. IDs the API does not return
// (deleted or private videos) are simply absent from the result; a
// failed batch is logged and skipped rather than failing the whole
// fetch.
func (f *MetricsFetcher) Fetch(ctx context.Context, ids []string) map[string]models.VideoMetrics {
	metrics := make(map[string]models.VideoMetrics)

	for start := 0; start < len(ids); start += maxIDsPerCall {
		end := start + maxIDsPerCall
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		resp, err := f.service.Videos.List([]string{"snippet", "statistics"}).
			Id(strings.Join(batch, ",")).
			Context(ctx).
			Do()
		if err != nil {
			log.Printf("Warning: metrics fetch failed for batch of %d videos: %v", len(batch), err)
			continue
		}

		for _, item := range resp.Items {
			m := models.VideoMetrics{
				URL: "https://www.youtube.com/watch?v=" + item.Id,
			}
			if item.Snippet != nil {
				m.Title = item.Snippet.Title
			}
			if item.Statistics != nil {
				m.ViewCount = item.Statistics.ViewCount
				m.LikeCount = int64(item.Statistics.LikeCount)
				m.CommentCount = item.Statistics.CommentCount
			}
			metrics[item.Id] = m
		}
	}

	return metrics
}
