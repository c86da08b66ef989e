package cycle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestChannelObserver_ForwardsUpdates(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 4)
	obs := NewChannelObserver(ch)

	obs.Update(2, 0.5)

	select {
	case update := <-ch:
		if update.DetectorIndex != 2 || update.Value != 0.5 {
			t.Errorf("update = (%d, %f), want (2, 0.5)", update.DetectorIndex, update.Value)
		}
	default:
		t.Fatal("no update was forwarded to the channel")
	}
}

func TestChannelObserver_ClampsProgress(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 1)
	NewChannelObserver(ch).Update(0, 1.7)

	update := <-ch
	if update.Value != 1.0 {
		t.Errorf("progress = %f, want clamped to 1.0", update.Value)
	}
}

func TestChannelObserver_DropsWhenFull(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	// The second send must not block.
	obs.Update(0, 0.1)
	obs.Update(0, 0.2)

	if update := <-ch; update.Value != 0.1 {
		t.Errorf("first update = %f, want 0.1", update.Value)
	}
	select {
	case update := <-ch:
		t.Errorf("unexpected second update %f, want dropped", update.Value)
	default:
	}
}

func TestChannelObserver_NilChannel(t *testing.T) {
	t.Parallel()

	// Must not panic.
	NewChannelObserver(nil).Update(0, 0.5)
}

func TestLoggingObserver_Throttles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewLoggingObserver(logger, 0.25)

	obs.Update(0, 0.05) // first nonzero progress: logged
	obs.Update(0, 0.10) // delta below threshold: suppressed
	obs.Update(0, 0.40) // delta above threshold: logged
	obs.Update(0, 1.0)  // completion: always logged

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 3 {
		t.Errorf("logged %d lines, want 3:\n%s", lines, buf.String())
	}
	if !strings.Contains(buf.String(), "detection progress") {
		t.Errorf("log output missing message, got:\n%s", buf.String())
	}
}

func TestLoggingObserver_DefaultThreshold(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewLoggingObserver(logger, 0)

	obs.Update(0, 0.01)
	obs.Update(0, 0.05) // within the default 10% threshold: suppressed

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 1 {
		t.Errorf("logged %d lines, want 1:\n%s", lines, buf.String())
	}
}

func TestMetricsObserver_Update(t *testing.T) {
	t.Parallel()

	obs := NewMetricsObserver()
	obs.Update(0, 0.3)
	obs.Update(1, 0.9)
	obs.ResetMetrics()
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()

	NewNoOpObserver().Update(0, 0.5)
}

func TestDetectorReportsCompletion(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 16)
	_, ok := Find(0, modCounter(5), Options{Observer: NewChannelObserver(ch)})
	if !ok {
		t.Fatal("Find() reported no cycle")
	}
	close(ch)

	var last ProgressUpdate
	got := false
	for update := range ch {
		last = update
		got = true
	}
	if !got || last.Value != 1.0 {
		t.Errorf("final progress update = %+v, want value 1.0", last)
	}
}
