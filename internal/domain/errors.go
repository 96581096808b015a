package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected, non-exceptional outcomes.
var (
	// ErrTranscriptUnavailable means the video has no fetchable captions.
	// Expected for many videos; callers degrade to title/description
	// classification and never surface this to the end user.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrVideoNotFound means the upstream catalog has no such video.
	ErrVideoNotFound = errors.New("video not found")
)

// InputFormatError is a user-correctable failure: the supplied text could
// not be resolved to a video identifier.
type InputFormatError struct {
	Input string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("unrecognized video URL or ID: %q", e.Input)
}

// ConfigurationError is an operator-correctable failure, carrying a
// remediation hint that must reach the response body.
type ConfigurationError struct {
	Hint string
}

func (e *ConfigurationError) Error() string {
	return "service credential not configured"
}

// UpstreamError is a non-success response from the external platform. The
// upstream status and message travel with it so rejection messages need
// no re-derivation.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}

// PolicyViolationError rejects a video that exceeds the duration ceiling.
// It carries the exact seconds, the rounded minutes and the threshold so
// the message is fully reconstructable.
type PolicyViolationError struct {
	Seconds    int
	Minutes    float64
	MaxSeconds int
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("video is %.2f minutes (%ds), exceeds the %d second limit",
		e.Minutes, e.Seconds, e.MaxSeconds)
}
