package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agbru/cyclecalc/internal/cycle"
)

func TestFormatQuietDetection(t *testing.T) {
	t.Parallel()

	if got := FormatQuietDetection(cycle.Cycle[uint64]{Start: 2, Length: 3, State: 7}, true); got != "2 3 7" {
		t.Errorf("FormatQuietDetection() = %q, want \"2 3 7\"", got)
	}
	if got := FormatQuietDetection(cycle.Cycle[uint64]{}, false); got != "none" {
		t.Errorf("FormatQuietDetection() = %q, want \"none\"", got)
	}
}

func TestStreamSequence(t *testing.T) {
	withoutColors(t)

	step := func(x uint64) uint64 { return (x + 1) % 3 }

	t.Run("AnnotatesDetection", func(t *testing.T) {
		var buf bytes.Buffer
		it := cycle.NewIterator(uint64(0), step, cycle.Options{})
		if err := StreamSequence(context.Background(), it, 6, false, &buf); err != nil {
			t.Fatalf("StreamSequence() error: %v", err)
		}
		if !strings.Contains(buf.String(), "<- cycle detected (start 0, length 3)") {
			t.Errorf("missing detection annotation:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "Cycle detected:") {
			t.Errorf("missing final summary:\n%s", buf.String())
		}
	})

	t.Run("QuietLines", func(t *testing.T) {
		var buf bytes.Buffer
		it := cycle.NewIterator(uint64(0), step, cycle.Options{})
		if err := StreamSequence(context.Background(), it, 3, true, &buf); err != nil {
			t.Fatalf("StreamSequence() error: %v", err)
		}
		want := "0 0\n1 1\n2 2\n"
		if buf.String() != want {
			t.Errorf("quiet stream = %q, want %q", buf.String(), want)
		}
	})

	t.Run("NoDetectionWithinCount", func(t *testing.T) {
		var buf bytes.Buffer
		it := cycle.NewIterator(uint64(0), step, cycle.Options{})
		if err := StreamSequence(context.Background(), it, 2, false, &buf); err != nil {
			t.Fatalf("StreamSequence() error: %v", err)
		}
		if !strings.Contains(buf.String(), "(no cycle detected in 2 pairs)") {
			t.Errorf("missing no-detection note:\n%s", buf.String())
		}
	})

	t.Run("BudgetExhaustedUnderStopPolicy", func(t *testing.T) {
		var buf bytes.Buffer
		it := cycle.NewIterator(uint64(0), func(x uint64) uint64 { return x + 1 }, cycle.Options{
			MaxIterations:     3,
			OnBudgetExhausted: cycle.Stop,
		})
		err := StreamSequence(context.Background(), it, 10, false, &buf)
		if !errors.Is(err, cycle.ErrBudgetExhausted) {
			t.Fatalf("StreamSequence() error = %v, want ErrBudgetExhausted", err)
		}
		if !strings.Contains(buf.String(), "budget exhausted") {
			t.Errorf("missing budget note:\n%s", buf.String())
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		it := cycle.NewIterator(uint64(0), step, cycle.Options{})
		if err := StreamSequence(ctx, it, 3, true, &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
			t.Errorf("StreamSequence() error = %v, want context.Canceled", err)
		}
	})
}
