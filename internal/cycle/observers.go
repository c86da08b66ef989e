// This file contains the progress observer abstraction and its concrete
// implementations. Detection over a large state space can take a while, so
// detectors periodically report how much of their safety budget is consumed.
package cycle

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressObserver receives throttled progress notifications from a running
// detection. Progress is the fraction of the safety budget consumed, in
// [0.0, 1.0]; 1.0 is always reported when detection finishes, whether or not
// a cycle was found.
type ProgressObserver interface {
	// Update reports the progress of a detection run.
	//
	// Parameters:
	//   - detectorIndex: Identifies the run when several share an observer.
	//   - progress: The normalized budget consumption (0.0 to 1.0).
	Update(detectorIndex int, progress float64)
}

// ProgressUpdate is a single progress notification carried over a channel.
type ProgressUpdate struct {
	// DetectorIndex identifies the detection run.
	DetectorIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards progress updates to a channel, typically consumed
// by a UI goroutine. Sends are non-blocking: when the channel is full the
// update is dropped and the consumer catches up on the next one.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to a channel.
//
// Parameters:
//   - ch: The channel to send progress updates to. If nil, updates are discarded.
//
// Returns:
//   - *ChannelObserver: A new observer that forwards to the channel.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver by sending to the channel.
func (o *ChannelObserver) Update(detectorIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}

	update := ProgressUpdate{DetectorIndex: detectorIndex, Value: progress}

	select {
	case o.channel <- update:
	default:
		// Channel full, drop the update.
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs progress updates using zerolog, throttled by a
// minimum progress delta to avoid log spam.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress. It only logs
// when progress changes by at least the threshold amount.
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - threshold: Minimum progress change to trigger a log (e.g., 0.1 for 10%).
//
// Returns:
//   - *LoggingObserver: A new observer that logs to zerolog.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver by logging significant progress changes.
func (o *LoggingObserver) Update(detectorIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	lastProgress := o.lastLog[detectorIndex]

	shouldLog := progress >= 1.0 ||
		lastProgress == 0 && progress > 0 ||
		progress-lastProgress >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("detector", detectorIndex).
			Float64("progress", progress).
			Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
			Msg("detection progress")
		o.lastLog[detectorIndex] = progress
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// detectionProgressGauge tracks detection budget consumption.
	// Registered once globally to avoid duplicate registration errors.
	detectionProgressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cyclecalc_detection_progress",
			Help: "Current progress of cycle detections (0.0 to 1.0)",
		},
		[]string{"detector_index"},
	)
)

// MetricsObserver exports detection progress to Prometheus.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
//
// Returns:
//   - *MetricsObserver: A new observer that exports to Prometheus.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: detectionProgressGauge}
}

// Update implements ProgressObserver by updating the Prometheus gauge.
func (o *MetricsObserver) Update(detectorIndex int, progress float64) {
	o.gauge.WithLabelValues(fmt.Sprintf("%d", detectorIndex)).Set(progress)
}

// ResetMetrics resets the progress metrics for all detectors.
// This should be called at the start of a new detection batch.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all progress updates. Useful for tests and for
// detections that run too quickly to be worth reporting.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer that discards updates.
//
// Returns:
//   - *NoOpObserver: A new no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(detectorIndex int, progress float64) {}

// noOpObserver is the shared default used when Options.Observer is nil.
var noOpObserver ProgressObserver = &NoOpObserver{}
