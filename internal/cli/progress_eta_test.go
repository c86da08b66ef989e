package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatETA(t *testing.T) {
	t.Parallel()

	cases := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{30 * time.Second, "30s"},
		{150 * time.Second, "2m30s"},
		{2 * time.Minute, "2m"},
		{75 * time.Minute, "1h15m"},
		{2 * time.Hour, "2h"},
	}
	for _, tc := range cases {
		if got := FormatETA(tc.eta); got != tc.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.want)
		}
	}
}

func TestProgressWithETA_EarlyUpdates(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(1)
	// Immediately after creation there is no basis for an estimate.
	progress, eta := p.UpdateWithETA(0, 0.1)
	if progress != 0.1 {
		t.Errorf("progress = %f, want 0.1", progress)
	}
	if eta != 0 {
		t.Errorf("eta = %v, want 0 for an early update", eta)
	}
}

func TestProgressWithETA_EstimatesAfterProgress(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(1)
	// Age the tracker so rate estimation kicks in.
	p.startTime = time.Now().Add(-time.Second)
	p.lastUpdate = time.Now().Add(-time.Second)

	_, eta := p.UpdateWithETA(0, 0.5)
	if eta <= 0 {
		t.Errorf("eta = %v, want a positive estimate at 50%% progress", eta)
	}
	if got := p.GetETA(); got <= 0 {
		t.Errorf("GetETA() = %v, want a positive estimate", got)
	}
}

func TestProgressWithETA_NoETAWhenComplete(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(1)
	p.startTime = time.Now().Add(-time.Second)
	p.lastUpdate = time.Now().Add(-time.Second)
	p.UpdateWithETA(0, 1.0)

	if got := p.GetETA(); got != 0 {
		t.Errorf("GetETA() = %v, want 0 at full progress", got)
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()

	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	if !strings.Contains(got, "50.00%") || !strings.Contains(got, "ETA: 30s") {
		t.Errorf("FormatProgressBarWithETA() = %q", got)
	}
}
