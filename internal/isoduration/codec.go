// Package isoduration decodes the platform's ISO-8601 duration strings
// (PT[nH][nM][nS]) into a canonical ResolvedDuration.
package isoduration

import (
	"regexp"
	"strconv"

	"github.com/habitloop/curator/internal/domain"
)

// durationPattern anchors the full PT form. Each component is optional;
// an input matching with no components ("PT") decodes to zero.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Decode parses a platform duration string. Malformed input decodes to a
// zero duration rather than an error, so one unparsable record cannot
// abort a batch. Callers distinguish "unknown" via ResolvedDuration.IsZero.
func Decode(raw string) domain.ResolvedDuration {
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.NewResolvedDuration(0)
	}

	hours := component(m[1])
	minutes := component(m[2])
	seconds := component(m[3])

	return domain.NewResolvedDuration(hours*3600 + minutes*60 + seconds)
}

func component(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
