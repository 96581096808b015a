// Package curation combines the gateway, the duration policy and the tag
// classifier into the two user-facing flows: catalog search-and-filter
// and single-video verification.
package curation

import (
	"context"
	"fmt"

	"github.com/habitloop/curator/internal/classifier"
	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/isoduration"
	"github.com/habitloop/curator/internal/logging"
	"github.com/habitloop/curator/internal/policy"
	"github.com/habitloop/curator/internal/telemetry"
	"github.com/habitloop/curator/internal/videoid"
	"github.com/habitloop/curator/internal/youtube"
)

// DefaultOverfetchMultiplier compensates for expected post-filter loss.
// Tunable policy, not a contract.
const DefaultOverfetchMultiplier = 2

// Searcher runs the search-and-filter flow.
type Searcher struct {
	gateway    youtube.Gateway
	classifier *classifier.Classifier
	logger     logging.Logger
	metrics    *telemetry.Metrics
	overfetch  int
}

// NewSearcher wires the search orchestrator. metrics may be nil.
func NewSearcher(gateway youtube.Gateway, cls *classifier.Classifier, overfetch int, logger logging.Logger, metrics *telemetry.Metrics) *Searcher {
	if overfetch < 1 {
		overfetch = DefaultOverfetchMultiplier
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Searcher{
		gateway:    gateway,
		classifier: cls,
		logger:     logger,
		metrics:    metrics,
		overfetch:  overfetch,
	}
}

// Search over-fetches candidates, batch-fetches their metadata in one
// call, silently drops duration-policy violations, and maps survivors to
// display-ready results preserving the gateway's order. Gateway failures
// abort the whole search; batching is all-or-nothing.
func (s *Searcher) Search(ctx context.Context, query string, desiredCount int) ([]domain.SearchResult, error) {
	ids, err := s.gateway.Search(ctx, query, int64(desiredCount*s.overfetch))
	if err != nil {
		s.countUpstream("search")
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(ids) == 0 {
		return []domain.SearchResult{}, nil
	}

	metas, err := s.gateway.FetchMetadata(ctx, ids)
	if err != nil {
		s.countUpstream("metadata")
		return nil, fmt.Errorf("fetch metadata for %d candidates: %w", len(ids), err)
	}

	results := make([]domain.SearchResult, 0, len(metas))
	for _, meta := range metas {
		resolved := isoduration.Decode(meta.DurationRaw)
		decision := policy.Check(resolved)
		if !decision.Pass {
			s.logger.Debug("search candidate dropped by duration policy",
				logging.String("video_id", string(meta.ID)),
				logging.Int("seconds", decision.Seconds))
			if s.metrics != nil {
				s.metrics.PolicyRejections.WithLabelValues("search").Inc()
			}
			continue
		}

		result := domain.SearchResult{
			ID:              meta.ID,
			Title:           meta.Title,
			ChannelName:     meta.ChannelName,
			DurationMinutes: resolved.Minutes,
			DurationSeconds: resolved.Seconds,
			DurationRaw:     meta.DurationRaw,
			Thumbnail:       meta.Thumbnail,
			Description:     meta.Description,
			URL:             videoid.WatchURL(meta.ID),
			ViewCount:       meta.ViewCount,
			LikeCount:       meta.LikeCount,
			PublishedAt:     meta.PublishedAt,
		}
		if s.classifier != nil {
			tags := s.classifier.Classify(meta.Title, meta.Description)
			result.Tags = &tags
		}
		results = append(results, result)
	}

	if s.metrics != nil {
		s.metrics.SearchResults.Observe(float64(len(results)))
	}
	s.logger.Info("search filtered",
		logging.String("query", query),
		logging.Int("candidates", len(metas)),
		logging.Int("survivors", len(results)))

	return results, nil
}

func (s *Searcher) countUpstream(op string) {
	if s.metrics != nil {
		s.metrics.UpstreamErrors.WithLabelValues(op).Inc()
	}
}
