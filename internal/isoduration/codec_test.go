package isoduration_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/habitloop/curator/internal/isoduration"
)

func TestDecode_ComponentCombinations(t *testing.T) {
	testCases := []struct {
		raw         string
		wantSeconds int
	}{
		{"PT7M30S", 450},
		{"PT1H", 3600},
		{"PT45S", 45},
		{"PT8M", 480},
		{"PT1H2M3S", 3723},
		{"PT1H30S", 3630},
		{"PT0S", 0},
		{"PT", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			d := isoduration.Decode(tc.raw)
			if d.Seconds != tc.wantSeconds {
				t.Errorf("Decode(%q).Seconds = %d, want %d", tc.raw, d.Seconds, tc.wantSeconds)
			}
			wantMinutes := math.Round(float64(tc.wantSeconds)/60*100) / 100
			if math.Abs(d.Minutes-wantMinutes) > 0.01 {
				t.Errorf("Decode(%q).Minutes = %v, want %v", tc.raw, d.Minutes, wantMinutes)
			}
		})
	}
}

func TestDecode_AllSubsets(t *testing.T) {
	// Every subset of {H, M, S} with a couple of magnitudes each.
	for _, h := range []int{0, 1, 2} {
		for _, m := range []int{0, 7, 59} {
			for _, s := range []int{0, 30, 59} {
				raw := "PT"
				if h > 0 {
					raw += fmt.Sprintf("%dH", h)
				}
				if m > 0 {
					raw += fmt.Sprintf("%dM", m)
				}
				if s > 0 {
					raw += fmt.Sprintf("%dS", s)
				}

				want := h*3600 + m*60 + s
				// Components with value zero are omitted above, so the
				// expected total only counts what was encoded.
				d := isoduration.Decode(raw)
				if d.Seconds != want {
					t.Errorf("Decode(%q).Seconds = %d, want %d", raw, d.Seconds, want)
				}
				if math.Abs(d.Minutes*60-float64(d.Seconds)) > 0.6 {
					t.Errorf("Decode(%q): minutes %v drifts from seconds %d", raw, d.Minutes, d.Seconds)
				}
			}
		}
	}
}

func TestDecode_MalformedYieldsZero(t *testing.T) {
	for _, raw := range []string{
		"",
		"7:30",
		"450",
		"PT7.5M",
		"P1DT2H", // days are outside the platform's short-video grammar
		"PT30S extra",
		"pt7m30s", // unit letters are upper case in the platform form
	} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			d := isoduration.Decode(raw)
			if d.Seconds != 0 || d.Minutes != 0 {
				t.Errorf("Decode(%q) = %+v, want zero duration", raw, d)
			}
			if !d.IsZero() {
				t.Errorf("Decode(%q).IsZero() = false, want true", raw)
			}
		})
	}
}

func TestResolvedDuration_Display(t *testing.T) {
	d := isoduration.Decode("PT7M30S")
	if got := d.String(); got != "7.50 min / 450s" {
		t.Errorf("String() = %q, want %q", got, "7.50 min / 450s")
	}
	if got := d.CeilMinutes(); got != 8 {
		t.Errorf("CeilMinutes() = %d, want 8", got)
	}
	if got := isoduration.Decode("PT5M").CeilMinutes(); got != 5 {
		t.Errorf("CeilMinutes() = %d, want 5", got)
	}
}
