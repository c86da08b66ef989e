package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/cyclecalc/internal/cli"
	"github.com/agbru/cyclecalc/internal/config"
	"github.com/agbru/cyclecalc/internal/cycle"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
	"github.com/agbru/cyclecalc/internal/orchestration"
	"github.com/agbru/cyclecalc/internal/render"
	"github.com/agbru/cyclecalc/internal/server"
	"github.com/agbru/cyclecalc/internal/steps"
	"github.com/agbru/cyclecalc/internal/ui"
)

// Application represents the cyclecalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (detect, resolve, repeat, stream,
// server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "cyclecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, steps.Names())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (version, server, or one of the
// sequence modes).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	step, err := a.buildStep()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	switch a.Config.Mode {
	case config.ModeResolve:
		return a.runResolve(step, out)
	case config.ModeRepeat:
		return a.runRepeat(step, out)
	case config.ModeStream:
		return a.runStream(ctx, step, out)
	default:
		return a.runDetect(ctx, step, out)
	}
}

// buildStep resolves the configured step name against the registry and
// builds the transition function from the configured parameters.
func (a *Application) buildStep() (cycle.StepFunc[uint64], error) {
	def, ok := steps.Get(a.Config.Step)
	if !ok {
		return nil, apperrors.NewConfigError("unknown step function: '%s'", a.Config.Step)
	}
	return def.Build(a.Config.ToStepParams())
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runDetect orchestrates detect mode: both detection strategies run
// concurrently over the same sequence and their answers are cross-checked.
func (a *Application) runDetect(ctx context.Context, step cycle.StepFunc[uint64], out io.Writer) int {
	detectors := orchestration.DefaultDetectors()

	// Skip informational output in quiet and JSON modes
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		names := make([]string, len(detectors))
		for i, d := range detectors {
			names[i] = d.Name()
		}
		cli.PrintExecutionMode(names, out)
	}

	// In quiet mode, use a discard writer for progress display
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteDetections(ctx, detectors, step, a.Config, progressOut)

	if a.Config.JSONOutput {
		return printJSONDetections(results, out)
	}

	if a.Config.Quiet {
		for _, res := range results {
			if res.Err == nil {
				cli.DisplayQuietDetection(out, res.Cycle, res.Found)
				return apperrors.ExitSuccess
			}
		}
		return apperrors.HandleRunError(results[0].Err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	return orchestration.AnalyzeComparisonResults(results, a.Config, out)
}

// runResolve resolves the state at the configured target iteration.
func (a *Application) runResolve(step cycle.StepFunc[uint64], out io.Writer) int {
	target, err := a.Config.TargetInt()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	opts := a.Config.DetectionOptions()
	start := time.Now()
	state := cycle.StateAt(a.Config.Initial, step, target, opts)
	duration := time.Since(start)

	if a.Config.JSONOutput {
		return printJSON(out, struct {
			Mode     string `json:"mode"`
			Step     string `json:"step"`
			Target   string `json:"target"`
			State    uint64 `json:"state"`
			Duration string `json:"duration"`
		}{config.ModeResolve, a.Config.Step, target.String(), state, duration.String()})
	}

	if a.Config.Quiet {
		fmt.Fprintln(out, state)
		return apperrors.ExitSuccess
	}

	// Rerun constant-memory detection so the reduction arithmetic can be
	// shown; against a detectable cycle this is cheap relative to the
	// resolution itself.
	if c, found := cycle.Find(a.Config.Initial, step, opts); found {
		fmt.Fprintf(out, "%s\n", render.Lookup(target, c, state))
	} else {
		fmt.Fprintf(out, "%s\n", render.StateAtTarget(target, state))
	}
	fmt.Fprintf(out, "Resolved in %s%s%s.\n", cli.ColorYellow(), cli.FormatExecutionDuration(duration), cli.ColorReset())
	return apperrors.ExitSuccess
}

// runRepeat reports the first iteration at which any state repeats.
func (a *Application) runRepeat(step cycle.StepFunc[uint64], out io.Writer) int {
	opts := a.Config.DetectionOptions()
	rep, found := cycle.UntilRepeat(a.Config.Initial, step, opts)

	if a.Config.JSONOutput {
		return printJSON(out, struct {
			Mode      string `json:"mode"`
			Step      string `json:"step"`
			Found     bool   `json:"found"`
			Iteration int    `json:"iteration,omitempty"`
			State     uint64 `json:"state,omitempty"`
		}{config.ModeRepeat, a.Config.Step, found, rep.Iteration, rep.State})
	}

	if a.Config.Quiet {
		if found {
			fmt.Fprintf(out, "%d %d\n", rep.Iteration, rep.State)
		} else {
			fmt.Fprintln(out, "none")
		}
		return apperrors.ExitSuccess
	}

	if found {
		fmt.Fprintf(out, "%s\n", render.Repeat(rep))
	} else {
		fmt.Fprintf(out, "%s\n", render.NotFound())
	}
	return apperrors.ExitSuccess
}

// runStream emits the sequence pair by pair, annotating cycle detection as
// it happens.
func (a *Application) runStream(ctx context.Context, step cycle.StepFunc[uint64], out io.Writer) int {
	it := cycle.NewIterator(a.Config.Initial, step, a.Config.DetectionOptions())

	start := time.Now()
	if err := cli.StreamSequence(ctx, it, a.Config.StreamCount, a.Config.Quiet, out); err != nil {
		return apperrors.HandleRunError(err, time.Since(start), a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonDetection represents a single detection result in JSON format.
type jsonDetection struct {
	Detector string `json:"detector"`
	Duration string `json:"duration"`
	Found    bool   `json:"found"`
	Start    int    `json:"start,omitempty"`
	Length   int    `json:"length,omitempty"`
	State    uint64 `json:"state,omitempty"`
	Error    string `json:"error,omitempty"`
}

// printJSONDetections formats the detection results as a JSON array and
// writes them to the output. This is useful for programmatic consumption of
// the results.
func printJSONDetections(results []orchestration.DetectionResult, out io.Writer) int {
	output := make([]jsonDetection, len(results))
	for i, res := range results {
		jd := jsonDetection{
			Detector: res.Name,
			Duration: res.Duration.String(),
			Found:    res.Found,
		}
		if res.Err != nil {
			jd.Error = res.Err.Error()
		} else if res.Found {
			jd.Start = res.Cycle.Start
			jd.Length = res.Cycle.Length
			jd.State = res.Cycle.State
		}
		output[i] = jd
	}
	return printJSON(out, output)
}

// printJSON encodes v as indented JSON.
func printJSON(out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
