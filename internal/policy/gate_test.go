package policy_test

import (
	"errors"
	"testing"

	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/policy"
)

func TestCheck_Boundary(t *testing.T) {
	testCases := []struct {
		seconds  int
		wantPass bool
	}{
		{0, true},
		{300, true},
		{479, true},
		{480, true}, // exactly at the ceiling passes
		{481, false},
		{600, false},
	}

	for _, tc := range testCases {
		d := domain.NewResolvedDuration(tc.seconds)
		decision := policy.Check(d)
		if decision.Pass != tc.wantPass {
			t.Errorf("Check(%ds).Pass = %v, want %v", tc.seconds, decision.Pass, tc.wantPass)
		}
		if decision.Seconds != tc.seconds {
			t.Errorf("Check(%ds).Seconds = %d", tc.seconds, decision.Seconds)
		}
		if decision.MaxSeconds != policy.MaxDurationSeconds {
			t.Errorf("Check(%ds).MaxSeconds = %d, want %d", tc.seconds, decision.MaxSeconds, policy.MaxDurationSeconds)
		}
	}
}

func TestCheckMinutes(t *testing.T) {
	if d := policy.CheckMinutes(8); !d.Pass {
		t.Error("CheckMinutes(8) failed, want pass (8 min == 480s)")
	}
	if d := policy.CheckMinutes(9); d.Pass {
		t.Error("CheckMinutes(9) passed, want fail")
	}
}

func TestViolation_Payload(t *testing.T) {
	decision := policy.Check(domain.NewResolvedDuration(522))
	err := decision.Violation()
	if err == nil {
		t.Fatal("Violation() = nil for failing decision")
	}

	var pv *domain.PolicyViolationError
	if !errors.As(err, &pv) {
		t.Fatalf("Violation() type = %T, want *domain.PolicyViolationError", err)
	}
	if pv.Seconds != 522 || pv.MaxSeconds != 480 {
		t.Errorf("violation payload = %+v", pv)
	}
	if pv.Minutes != 8.7 {
		t.Errorf("violation minutes = %v, want 8.7", pv.Minutes)
	}

	if passErr := policy.Check(domain.NewResolvedDuration(60)).Violation(); passErr != nil {
		t.Errorf("Violation() on pass = %v, want nil", passErr)
	}
}
