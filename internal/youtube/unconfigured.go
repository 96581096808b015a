package youtube

import (
	"context"

	"github.com/habitloop/curator/internal/domain"
)

// Unconfigured is the gateway used when no API key is set. Every
// operation fails with a ConfigurationError carrying the remediation
// hint, so the surface degrades to 503-with-hint instead of refusing to
// start.
type Unconfigured struct{}

var _ Gateway = Unconfigured{}

func (Unconfigured) FetchMetadata(context.Context, []domain.VideoID) ([]domain.RawVideoMetadata, error) {
	return nil, missingCredential()
}

func (Unconfigured) Search(context.Context, string, int64) ([]domain.VideoID, error) {
	return nil, missingCredential()
}

func (Unconfigured) FetchTranscript(context.Context, domain.VideoID) (string, error) {
	return "", missingCredential()
}
