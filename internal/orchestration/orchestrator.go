package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/cyclecalc/internal/cli"
	"github.com/agbru/cyclecalc/internal/config"
	"github.com/agbru/cyclecalc/internal/cycle"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
	"github.com/agbru/cyclecalc/internal/ui"
)

// Detector abstracts a cycle detection strategy so detect mode can run
// several of them over the same sequence and cross-check their answers.
type Detector interface {
	// Name returns the display name of the strategy (e.g., "Floyd").
	Name() string
	// Detect runs the strategy. States is non-nil only for strategies that
	// record the visited sequence.
	Detect(initial uint64, step cycle.StepFunc[uint64], opts cycle.Options) (c cycle.Cycle[uint64], states []uint64, found bool)
}

// FloydDetector runs constant-memory two-pointer detection.
type FloydDetector struct{}

// Name implements Detector.
func (FloydDetector) Name() string { return "Floyd" }

// Detect implements Detector.
func (FloydDetector) Detect(initial uint64, step cycle.StepFunc[uint64], opts cycle.Options) (cycle.Cycle[uint64], []uint64, bool) {
	c, found := cycle.Find(initial, step, opts)
	return c, nil, found
}

// HistoryDetector runs first-seen-map detection and keeps the visited states.
type HistoryDetector struct{}

// Name implements Detector.
func (HistoryDetector) Name() string { return "History" }

// Detect implements Detector.
func (HistoryDetector) Detect(initial uint64, step cycle.StepFunc[uint64], opts cycle.Options) (cycle.Cycle[uint64], []uint64, bool) {
	h, found := cycle.FindWithHistory(initial, step, opts)
	return h.Cycle, h.States, found
}

// DefaultDetectors returns the strategies detect mode runs by default.
func DefaultDetectors() []Detector {
	return []Detector{FloydDetector{}, HistoryDetector{}}
}

// DetectionResult encapsulates the outcome of a single detection strategy.
// It serves as a standardized container for results from different
// strategies, facilitating comparison and reporting.
type DetectionResult struct {
	// Name is the identifier of the strategy used (e.g., "Floyd").
	Name string
	// Cycle is the detected cycle. Only meaningful when Found is true.
	Cycle cycle.Cycle[uint64]
	// Found reports whether the strategy detected a cycle within the budget.
	Found bool
	// States is the visited sequence, for strategies that record it.
	States []uint64
	// Duration is the time taken to complete the detection.
	Duration time.Duration
	// Err contains a context error if the run was canceled or timed out.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking detection
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteDetections orchestrates the concurrent execution of one or more
// detection strategies over the same sequence.
//
// It manages the lifecycle of detection goroutines, collects their results,
// and coordinates the display of progress updates. This function is the core
// of the application's concurrency model.
//
// The detectors themselves are bounded by the iteration budget rather than
// the context; the context is consulted after each strategy completes so a
// timeout or cancellation still surfaces in the result.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - detectors: A slice of strategies to execute.
//   - step: The transition function to iterate.
//   - cfg: The application configuration (initial state, budget, etc.).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []DetectionResult: A slice containing the results of each strategy.
func ExecuteDetections(ctx context.Context, detectors []Detector, step cycle.StepFunc[uint64], cfg config.AppConfig, out io.Writer) []DetectionResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]DetectionResult, len(detectors))
	progressChan := make(chan cycle.ProgressUpdate, len(detectors)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(detectors), out)

	for i, det := range detectors {
		idx, detector := i, det
		g.Go(func() error {
			opts := cfg.DetectionOptions()
			opts.DetectorIndex = idx
			opts.Observer = cycle.NewChannelObserver(progressChan)

			startTime := time.Now()
			c, states, found := detector.Detect(cfg.Initial, step, opts)
			results[idx] = DetectionResult{
				Name: detector.Name(), Cycle: c, Found: found, States: states,
				Duration: time.Since(startTime), Err: ctx.Err(),
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple detection
// strategies and generates a summary report.
//
// It sorts the results by execution time, validates consistency across the
// strategies, and displays a comparative table. Two strategies agree when
// they report the same cycle start and length; any disagreement, including
// one strategy finding a cycle the other missed, is a critical inconsistency.
//
// Parameters:
//   - results: The slice of detection results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []DetectionResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var reference *DetectionResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sDetector%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		case res.Found:
			status = fmt.Sprintf("%s✅ Cycle (start %d, length %d)%s", ui.ColorGreen(), res.Cycle.Start, res.Cycle.Length, ui.ColorReset())
			successCount++
			if reference == nil {
				reference = res
			}
		default:
			status = fmt.Sprintf("%s— No cycle within budget%s", ui.ColorYellow(), ui.ColorReset())
			successCount++
			if reference == nil {
				reference = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No detector could complete the run.\n")
		return apperrors.HandleRunError(firstError, 0, out, cli.CLIColorProvider{})
	}

	mismatch := false
	for i := range results {
		res := &results[i]
		if res.Err != nil || res == reference {
			continue
		}
		if res.Found != reference.Found ||
			(res.Found && (res.Cycle.Start != reference.Cycle.Start || res.Cycle.Length != reference.Cycle.Length)) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the detectors.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All detectors agree.\n")
	cli.DisplayDetection(reference.Cycle, reference.Found, historyStates(results), cfg.Verbose, out)
	return apperrors.ExitSuccess
}

// historyStates returns the visited sequence from whichever strategy
// recorded one, or nil.
func historyStates(results []DetectionResult) []uint64 {
	for i := range results {
		if results[i].States != nil {
			return results[i].States
		}
	}
	return nil
}
