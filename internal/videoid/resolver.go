// Package videoid resolves arbitrary user input (watch URLs, short links,
// embed URLs, or a bare identifier) to a canonical video identifier.
package videoid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/habitloop/curator/internal/domain"
)

const idFragment = `([A-Za-z0-9_-]{11})`

// resolvePatterns are tried in order; the first full match wins. URL forms
// come before the bare-identifier form so input that happens to look like
// both is resolved as a URL.
var resolvePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^#]*&)?v=` + idFragment + `(?:[&#].*)?$`),
	regexp.MustCompile(`^(?:https?://)?youtu\.be/` + idFragment + `(?:[?#].*)?$`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/` + idFragment + `(?:[?#].*)?$`),
	regexp.MustCompile(`^` + idFragment + `$`),
}

// Resolve extracts the 11-character identifier from input. Failure is a
// domain.InputFormatError: user-correctable, never transient.
func Resolve(input string) (domain.VideoID, error) {
	trimmed := strings.TrimSpace(input)
	for _, p := range resolvePatterns {
		if m := p.FindStringSubmatch(trimmed); m != nil {
			return domain.VideoID(m[1]), nil
		}
	}
	return "", &domain.InputFormatError{Input: input}
}

// WatchURL builds the canonical watch URL for an identifier.
func WatchURL(id domain.VideoID) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}
