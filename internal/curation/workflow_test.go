package curation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/habitloop/curator/internal/classifier"
	"github.com/habitloop/curator/internal/curation"
	"github.com/habitloop/curator/internal/domain"
)

const (
	verifyID  = "dQw4w9WgXcQ"
	verifyURL = "https://www.youtube.com/watch?v=" + verifyID
)

func fiveMinuteMeta() []domain.RawVideoMetadata {
	return []domain.RawVideoMetadata{{
		ID:          verifyID,
		Title:       "A simple morning workout",
		ChannelName: "Coach",
		DurationRaw: "PT5M",
		Description: "an easy routine to build the exercise habit",
	}}
}

func newWorkflow(gw *fakeGateway) *curation.Workflow {
	return curation.NewWorkflow(gw, classifier.New(nil), nil, nil)
}

func TestWorkflow_ValidWithTranscriptFallback(t *testing.T) {
	gw := &fakeGateway{
		metas:         fiveMinuteMeta(),
		transcriptErr: domain.ErrTranscriptUnavailable,
	}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)

	outcome := w.Verify(context.Background())
	if outcome.Status != curation.StatusValid {
		t.Fatalf("status = %s (%s), want valid", outcome.Status, outcome.Message)
	}
	c := outcome.Candidate
	if c == nil {
		t.Fatal("valid outcome carries no candidate")
	}
	if c.DurationMinutes != 5 {
		t.Errorf("ceil minutes = %d, want 5 (300s)", c.DurationMinutes)
	}
	if c.Duration.Seconds != 300 {
		t.Errorf("seconds = %d, want 300", c.Duration.Seconds)
	}
	// Classification ran on title+description only; both mention physical
	// activity, so the physical domain must be present.
	found := false
	for _, d := range c.Tags.LifeDomains {
		if d == domain.DomainPhysical {
			found = true
		}
	}
	if !found {
		t.Errorf("lifeDomains = %v, want physical from title/description", c.Tags.LifeDomains)
	}
	if c.Tags.Difficulty != domain.DifficultyBeginner {
		t.Errorf("difficulty = %q, want beginner ('simple', 'easy')", c.Tags.Difficulty)
	}
}

func TestWorkflow_InvalidInputFormat(t *testing.T) {
	w := newWorkflow(&fakeGateway{})
	w.SetURL("not a video url")

	outcome := w.Verify(context.Background())
	if outcome.Status != curation.StatusInvalid {
		t.Fatalf("status = %s, want invalid", outcome.Status)
	}
	if !strings.Contains(outcome.Message, "unrecognized") {
		t.Errorf("message = %q, want input-format detail", outcome.Message)
	}
}

func TestWorkflow_ConfigurationErrorCarriesHint(t *testing.T) {
	gw := &fakeGateway{metaErr: &domain.ConfigurationError{Hint: "set YOUTUBE_API_KEY"}}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)

	outcome := w.Verify(context.Background())
	if outcome.Status != curation.StatusInvalid {
		t.Fatalf("status = %s, want invalid", outcome.Status)
	}
	if !strings.Contains(outcome.Message, "YOUTUBE_API_KEY") {
		t.Errorf("message = %q, want remediation hint", outcome.Message)
	}
}

func TestWorkflow_PolicyViolation(t *testing.T) {
	metas := fiveMinuteMeta()
	metas[0].DurationRaw = "PT8M42S" // 522s
	w := newWorkflow(&fakeGateway{metas: metas})
	w.SetURL(verifyURL)

	outcome := w.Verify(context.Background())
	if outcome.Status != curation.StatusInvalid {
		t.Fatalf("status = %s, want invalid", outcome.Status)
	}
	// Exact seconds, rounded minutes and the threshold all appear.
	for _, fragment := range []string{"522", "8.70", "480"} {
		if !strings.Contains(outcome.Message, fragment) {
			t.Errorf("message %q missing %q", outcome.Message, fragment)
		}
	}
}

func TestWorkflow_SaveGate(t *testing.T) {
	gw := &fakeGateway{metas: fiveMinuteMeta(), transcriptErr: domain.ErrTranscriptUnavailable}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)

	// Saving before verification is blocked.
	if err := w.Save(curation.Candidate{DurationMinutes: 5}); !errors.Is(err, curation.ErrNotVerified) {
		t.Errorf("pre-verify Save error = %v, want ErrNotVerified", err)
	}

	outcome := w.Verify(context.Background())
	if outcome.Status != curation.StatusValid {
		t.Fatalf("status = %s, want valid", outcome.Status)
	}

	// Honest save passes.
	if err := w.Save(*outcome.Candidate); err != nil {
		t.Errorf("Save after verify = %v, want nil", err)
	}

	// Manually widening the duration after verification fails the
	// save-time re-check even though the valid state was reached honestly.
	edited := *outcome.Candidate
	edited.DurationMinutes = 9
	var pv *domain.PolicyViolationError
	if err := w.Save(edited); !errors.As(err, &pv) {
		t.Errorf("widened Save error = %v, want PolicyViolationError", err)
	}

	// Editing the URL invalidates the gate implicitly.
	w.SetURL("https://youtu.be/aaaaaaaaaaa")
	if err := w.Save(*outcome.Candidate); !errors.Is(err, curation.ErrNotVerified) {
		t.Errorf("post-edit Save error = %v, want ErrNotVerified", err)
	}
}

func TestWorkflow_SaveRejectsSwappedCandidate(t *testing.T) {
	gw := &fakeGateway{metas: fiveMinuteMeta(), transcriptErr: domain.ErrTranscriptUnavailable}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)
	if outcome := w.Verify(context.Background()); outcome.Status != curation.StatusValid {
		t.Fatalf("status = %s, want valid", outcome.Status)
	}

	// A candidate that never went through verification must not ride on a
	// valid state, even when every duration field passes the policy.
	swapped := curation.Candidate{
		VideoID:         "bbbbbbbbbbb",
		URL:             "https://youtu.be/bbbbbbbbbbb",
		Title:           "Never verified",
		Duration:        domain.NewResolvedDuration(300),
		DurationMinutes: 5,
	}
	if err := w.Save(swapped); !errors.Is(err, curation.ErrNotVerified) {
		t.Errorf("swapped Save error = %v, want ErrNotVerified", err)
	}

	// Same identifier but a different URL form than the one verified.
	shortForm := curation.Candidate{
		VideoID:         "dQw4w9WgXcQ",
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		Duration:        domain.NewResolvedDuration(300),
		DurationMinutes: 5,
	}
	if err := w.Save(shortForm); !errors.Is(err, curation.ErrNotVerified) {
		t.Errorf("rewritten-URL Save error = %v, want ErrNotVerified", err)
	}
}

func TestWorkflow_URLEditResetsToIdle(t *testing.T) {
	gw := &fakeGateway{metas: fiveMinuteMeta(), transcriptErr: domain.ErrTranscriptUnavailable}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)
	w.Verify(context.Background())

	w.SetURL("https://youtu.be/aaaaaaaaaaa")
	snap := w.Snapshot()
	if snap.Status != curation.StatusIdle {
		t.Errorf("status after edit = %s, want idle", snap.Status)
	}
	if snap.Candidate != nil {
		t.Error("candidate survived a URL edit")
	}

	// Re-setting the same URL is a no-op.
	w.SetURL(verifyURL)
	w.Verify(context.Background())
	w.SetURL(verifyURL)
	if snap := w.Snapshot(); snap.Status != curation.StatusValid {
		t.Errorf("status after same-URL set = %s, want valid", snap.Status)
	}
}

func TestWorkflow_StaleResultDiscarded(t *testing.T) {
	gw := &fakeGateway{metas: fiveMinuteMeta(), transcriptErr: domain.ErrTranscriptUnavailable}
	w := newWorkflow(gw)
	w.SetURL(verifyURL)

	// The URL is edited while the verification is in flight; the stale
	// completion must not overwrite the newer idle state.
	gw.onFetchMetadata = func() {
		w.SetURL("https://youtu.be/aaaaaaaaaaa")
	}

	w.Verify(context.Background())
	snap := w.Snapshot()
	if snap.Status != curation.StatusIdle {
		t.Errorf("status = %s, want idle (stale result discarded)", snap.Status)
	}
	if snap.Candidate != nil {
		t.Error("stale candidate applied")
	}
}
