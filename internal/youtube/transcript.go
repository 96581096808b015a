package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/habitloop/curator/internal/domain"
)

const (
	transcriptTimeout  = 15 * time.Second
	transcriptLanguage = "en"
)

// TranscriptClient fetches caption text from the platform's timedtext
// endpoint. Many videos have captions disabled; that is reported as
// domain.ErrTranscriptUnavailable, never as a hard error.
type TranscriptClient struct {
	baseURL string
	client  *http.Client
}

// NewTranscriptClient builds a client against baseURL (the production
// platform host, or a test server).
func NewTranscriptClient(baseURL string) *TranscriptClient {
	if baseURL == "" {
		baseURL = "https://www.youtube.com"
	}
	return &TranscriptClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: transcriptTimeout},
	}
}

// timedtext response shape: <transcript><text start=".." dur="..">…</text>…
type timedText struct {
	Texts []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Body string `xml:",chardata"`
}

// Fetch returns the full caption text joined into one string.
func (t *TranscriptClient) Fetch(ctx context.Context, id domain.VideoID) (string, error) {
	endpoint := fmt.Sprintf("%s/api/timedtext?lang=%s&v=%s",
		t.baseURL, transcriptLanguage, url.QueryEscape(string(id)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrTranscriptUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return "", &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: "timedtext request failed",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript body: %w", err)
	}
	// The endpoint answers 200 with an empty body for caption-disabled
	// videos rather than a 404.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", domain.ErrTranscriptUnavailable
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse transcript xml: %w", err)
	}
	if len(parsed.Texts) == 0 {
		return "", domain.ErrTranscriptUnavailable
	}

	lines := make([]string, 0, len(parsed.Texts))
	for _, line := range parsed.Texts {
		// Caption bodies arrive HTML-escaped inside the XML.
		cleaned := strings.TrimSpace(html.UnescapeString(line.Body))
		if cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	if len(lines) == 0 {
		return "", domain.ErrTranscriptUnavailable
	}

	return strings.Join(lines, " "), nil
}
