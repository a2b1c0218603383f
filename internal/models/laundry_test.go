package models

import "testing"

func TestStatusIsValidTarget(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusCollected, false}, // only reachable through collection completion
		{Status("Done"), false},
		{Status(""), false},
	}

	for _, tc := range cases {
		if got := tc.status.IsValidTarget(); got != tc.want {
			t.Errorf("IsValidTarget(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
