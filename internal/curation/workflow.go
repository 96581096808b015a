package curation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/habitloop/curator/internal/classifier"
	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/isoduration"
	"github.com/habitloop/curator/internal/logging"
	"github.com/habitloop/curator/internal/policy"
	"github.com/habitloop/curator/internal/telemetry"
	"github.com/habitloop/curator/internal/videoid"
	"github.com/habitloop/curator/internal/youtube"
)

// Status of the verification state machine.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusChecking Status = "checking"
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
)

// ErrNotVerified blocks saving when the current URL has not completed a
// successful verification.
var ErrNotVerified = errors.New("video must be verified before saving")

// Candidate is the pending library item a successful verification
// produces. DurationMinutes is the user-editable display value; Duration
// keeps the exact measurement for the save-time re-check.
type Candidate struct {
	VideoID          domain.VideoID          `json:"videoId"`
	URL              string                  `json:"url"`
	Title            string                  `json:"title"`
	ChannelName      string                  `json:"channelName"`
	Thumbnail        string                  `json:"thumbnail"`
	Duration         domain.ResolvedDuration `json:"resolvedDuration"`
	DurationMinutes  int                     `json:"durationMinutes"`
	DurationUnparsed bool                    `json:"durationUnparsed"`
	ViewCount        *uint64                 `json:"viewCount,omitempty"`
	LikeCount        *uint64                 `json:"likeCount,omitempty"`
	PublishedAt      *time.Time              `json:"publishedAt,omitempty"`
	Tags             domain.TagSet           `json:"tags"`
}

// Outcome is what one verify attempt produced.
type Outcome struct {
	Status    Status     `json:"status"`
	Message   string     `json:"message,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
}

// Workflow drives the fetch-and-verify interaction for a single video:
// idle → checking → valid|invalid, re-enterable on every URL edit. A
// generation counter guarantees a stale in-flight verification can never
// overwrite a newer reset (last write wins).
type Workflow struct {
	gateway    youtube.Gateway
	classifier *classifier.Classifier
	logger     logging.Logger
	metrics    *telemetry.Metrics

	mu          sync.Mutex
	url         string
	status      Status
	message     string
	candidate   *Candidate
	verifiedURL string // exact URL of the last successful verification
	seq         uint64
}

// NewWorkflow builds an idle workflow. metrics may be nil.
func NewWorkflow(gateway youtube.Gateway, cls *classifier.Classifier, logger logging.Logger, metrics *telemetry.Metrics) *Workflow {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Workflow{
		gateway:    gateway,
		classifier: cls,
		logger:     logger,
		metrics:    metrics,
		status:     StatusIdle,
	}
}

// SetURL records an edit to the source URL. Any change resets the machine
// to idle and invalidates the verification gate (the gate is the equality
// of verifiedURL with the current URL, not a separate flag).
func (w *Workflow) SetURL(url string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if url == w.url {
		return
	}
	w.url = url
	w.status = StatusIdle
	w.message = ""
	w.candidate = nil
	w.seq++
}

// Snapshot returns the current machine state.
func (w *Workflow) Snapshot() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Outcome{Status: w.status, Message: w.message, Candidate: w.candidate}
}

// Verify runs the full verification sequence for the current URL:
// resolve, fetch metadata, enforce the duration policy, best-effort
// transcript, classify. The classifier only runs after both metadata and
// transcript have settled; transcript failure of any kind narrows the
// classifier input instead of blocking.
func (w *Workflow) Verify(ctx context.Context) Outcome {
	w.mu.Lock()
	url := w.url
	w.seq++
	seq := w.seq
	w.status = StatusChecking
	w.message = ""
	w.candidate = nil
	w.mu.Unlock()

	outcome := w.run(ctx, url)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.seq {
		// A newer edit or verify superseded this attempt; drop it.
		w.logger.Debug("discarding stale verification result",
			logging.String("url", url))
		return Outcome{Status: w.status, Message: w.message, Candidate: w.candidate}
	}

	w.status = outcome.Status
	w.message = outcome.Message
	w.candidate = outcome.Candidate
	if outcome.Status == StatusValid {
		w.verifiedURL = url
	}
	if w.metrics != nil {
		w.metrics.VerificationsTotal.WithLabelValues(string(outcome.Status)).Inc()
	}
	return outcome
}

func (w *Workflow) run(ctx context.Context, url string) Outcome {
	id, err := videoid.Resolve(url)
	if err != nil {
		return Outcome{Status: StatusInvalid, Message: err.Error()}
	}

	metas, err := w.gateway.FetchMetadata(ctx, []domain.VideoID{id})
	if err != nil {
		return Outcome{Status: StatusInvalid, Message: fetchFailureMessage(err)}
	}
	meta := metas[0]

	resolved := isoduration.Decode(meta.DurationRaw)
	decision := policy.Check(resolved)
	if verr := decision.Violation(); verr != nil {
		if w.metrics != nil {
			w.metrics.PolicyRejections.WithLabelValues("verify").Inc()
		}
		return Outcome{Status: StatusInvalid, Message: verr.Error()}
	}

	transcript, terr := w.gateway.FetchTranscript(ctx, id)
	if terr != nil {
		// Unavailable captions and transport failures are equally valid
		// settled outcomes; classification proceeds on title/description.
		transcript = ""
		if w.metrics != nil {
			w.metrics.TranscriptFallbacks.Inc()
		}
		w.logger.Debug("classifying without transcript",
			logging.String("video_id", string(id)),
			logging.Err(terr))
	}

	start := time.Now()
	tags := w.classifier.Classify(transcript, meta.Title, meta.Description)
	if w.metrics != nil {
		w.metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	}

	return Outcome{
		Status: StatusValid,
		Candidate: &Candidate{
			VideoID:          id,
			URL:              url,
			Title:            meta.Title,
			ChannelName:      meta.ChannelName,
			Thumbnail:        meta.Thumbnail,
			Duration:         resolved,
			DurationMinutes:  resolved.CeilMinutes(),
			DurationUnparsed: resolved.IsZero(),
			ViewCount:        meta.ViewCount,
			LikeCount:        meta.LikeCount,
			PublishedAt:      meta.PublishedAt,
			Tags:             tags,
		},
	}
}

// Save gates committing a pending candidate: verification must have
// completed for the exact current URL, the submitted candidate must be
// the one that verification produced, and the duration (both the exact
// measurement and the possibly user-edited minutes field) must still pass
// the policy. Defends against widening the duration after verification
// and against swapping in a candidate that never went through it.
func (w *Workflow) Save(c Candidate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status != StatusValid || w.verifiedURL == "" || w.verifiedURL != w.url {
		return ErrNotVerified
	}
	if w.candidate == nil || c.VideoID != w.candidate.VideoID || c.URL != w.verifiedURL {
		return ErrNotVerified
	}
	if err := policy.Check(c.Duration).Violation(); err != nil {
		return err
	}
	if err := policy.CheckMinutes(c.DurationMinutes).Violation(); err != nil {
		if w.metrics != nil {
			w.metrics.PolicyRejections.WithLabelValues("save").Inc()
		}
		return err
	}
	return nil
}

// fetchFailureMessage maps gateway failures to user-facing messages per
// the error taxonomy: configuration errors carry their hint, upstream
// errors pass the upstream detail through, everything else stays generic.
func fetchFailureMessage(err error) string {
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		return fmt.Sprintf("%s (%s)", ce.Error(), ce.Hint)
	}
	if errors.Is(err, domain.ErrVideoNotFound) {
		return "video not found on the platform"
	}
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return fmt.Sprintf("network error: %v", err)
}
