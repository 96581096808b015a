// Package youtube is the narrow boundary to the external video platform:
// metadata lookup, catalog search, and best-effort transcript fetch. It
// holds the only service credential and keeps no state between calls.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/logging"
)

// Gateway is the platform boundary the pipeline depends on. Exactly three
// operations, so tests can substitute a deterministic fake.
type Gateway interface {
	// FetchMetadata resolves a batch of identifiers in one network round
	// trip. Returns domain.ErrVideoNotFound when the batch resolves to
	// zero items.
	FetchMetadata(ctx context.Context, ids []domain.VideoID) ([]domain.RawVideoMetadata, error)

	// Search returns up to maxResults candidate identifiers for a query,
	// restricted to the platform's medium-length bucket. An empty result
	// is a successful empty slice, not an error.
	Search(ctx context.Context, query string, maxResults int64) ([]domain.VideoID, error)

	// FetchTranscript returns the caption text for a video, or
	// domain.ErrTranscriptUnavailable when captions are disabled. Both
	// outcomes are expected.
	FetchTranscript(ctx context.Context, id domain.VideoID) (string, error)
}

const (
	rateBurst      = 3
	fetchParts     = "snippet,contentDetails,statistics"
	mediumDuration = "medium" // platform's coarse 4-20 minute bucket
)

// DataAPIGateway implements Gateway over the YouTube Data API v3 plus the
// public timedtext endpoint for captions.
type DataAPIGateway struct {
	svc         *youtubeapi.Service
	transcripts *TranscriptClient
	limiter     *rate.Limiter
	logger      logging.Logger
}

// Config for the real gateway.
type Config struct {
	APIKey            string
	TranscriptBaseURL string
	RequestsPerSecond int
}

// NewDataAPIGateway builds the gateway. A missing API key is a
// domain.ConfigurationError carrying the remediation hint.
func NewDataAPIGateway(ctx context.Context, cfg Config, logger logging.Logger) (*DataAPIGateway, error) {
	if cfg.APIKey == "" {
		return nil, missingCredential()
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &DataAPIGateway{
		svc:         svc,
		transcripts: NewTranscriptClient(cfg.TranscriptBaseURL),
		limiter:     rate.NewLimiter(rate.Limit(rps), rateBurst),
		logger:      logger,
	}, nil
}

// FetchMetadata issues one Videos.List call for the whole batch; the API
// accepts comma-joined identifiers.
func (g *DataAPIGateway) FetchMetadata(ctx context.Context, ids []domain.VideoID) ([]domain.RawVideoMetadata, error) {
	if len(ids) == 0 {
		return nil, domain.ErrVideoNotFound
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = string(id)
	}

	start := time.Now()
	response, err := g.svc.Videos.
		List(strings.Split(fetchParts, ",")).
		Id(strings.Join(strIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream("videos.list", err)
	}

	g.logger.Debug("metadata batch fetched",
		logging.Int("requested", len(ids)),
		logging.Int("returned", len(response.Items)),
		logging.Duration("elapsed", time.Since(start)))

	return metadataFromItems(response.Items)
}

// metadataFromItems converts a Videos.List batch, dropping malformed items
// with no snippet. A batch that converts to zero items is
// domain.ErrVideoNotFound, never an empty success.
func metadataFromItems(items []*youtubeapi.Video) ([]domain.RawVideoMetadata, error) {
	metas := make([]domain.RawVideoMetadata, 0, len(items))
	for _, item := range items {
		if item.Snippet == nil {
			continue
		}
		metas = append(metas, itemToMetadata(item))
	}
	if len(metas) == 0 {
		return nil, domain.ErrVideoNotFound
	}
	return metas, nil
}

// Search queries the catalog restricted to the medium-length bucket.
func (g *DataAPIGateway) Search(ctx context.Context, query string, maxResults int64) ([]domain.VideoID, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	response, err := g.svc.Search.
		List([]string{"id"}).
		Q(query).
		Type("video").
		VideoDuration(mediumDuration).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream("search.list", err)
	}

	ids := make([]domain.VideoID, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, domain.VideoID(item.Id.VideoId))
	}

	g.logger.Debug("search completed",
		logging.String("query", query),
		logging.Int64("max_results", maxResults),
		logging.Int("candidates", len(ids)))

	return ids, nil
}

// FetchTranscript is best-effort; unavailability is an expected outcome.
func (g *DataAPIGateway) FetchTranscript(ctx context.Context, id domain.VideoID) (string, error) {
	return g.transcripts.Fetch(ctx, id)
}

func itemToMetadata(item *youtubeapi.Video) domain.RawVideoMetadata {
	md := domain.RawVideoMetadata{
		ID:          domain.VideoID(item.Id),
		Title:       item.Snippet.Title,
		ChannelName: item.Snippet.ChannelTitle,
		Description: item.Snippet.Description,
	}
	if item.ContentDetails != nil {
		md.DurationRaw = item.ContentDetails.Duration
	}
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
		md.Thumbnail = item.Snippet.Thumbnails.Medium.Url
	}
	if item.Statistics != nil {
		views := item.Statistics.ViewCount
		likes := item.Statistics.LikeCount
		md.ViewCount = &views
		md.LikeCount = &likes
	}
	if item.Snippet.PublishedAt != "" {
		if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			md.PublishedAt = &ts
		}
	}
	return md
}

// upstream maps a Data API failure into the error taxonomy: googleapi
// errors become UpstreamError with the upstream status and message;
// anything else stays a wrapped transport error.
func upstream(op string, err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return &domain.UpstreamError{Status: ge.Code, Message: ge.Message}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func missingCredential() *domain.ConfigurationError {
	return &domain.ConfigurationError{
		Hint: "set YOUTUBE_API_KEY to a YouTube Data API v3 key",
	}
}
