package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/cyclecalc/internal/config"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the transition function and its parameters, the execution
// mode, the iteration budget and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Sequence: %s%s%s step from initial state %s%d%s (modulus %s%d%s).\n",
		ColorGreen(), cfg.Step, ColorReset(),
		ColorMagenta(), cfg.Initial, ColorReset(),
		ColorCyan(), cfg.Modulus, ColorReset())
	writeOut(out, "Mode: %s%s%s with a timeout of %s%s%s.\n",
		ColorGreen(), cfg.Mode, ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode displays the detection strategies about to run.
//
// Parameters:
//   - detectorNames: The names of the strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(detectorNames []string, out io.Writer) {
	var modeDesc string
	if len(detectorNames) > 1 {
		modeDesc = "Parallel comparison of all detectors"
	} else if len(detectorNames) == 1 {
		modeDesc = fmt.Sprintf("Single detection with the %s%s%s strategy",
			ColorGreen(), detectorNames[0], ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
//
// Parameters:
//   - out: The destination writer.
//   - format: The format string (see fmt.Printf).
//   - a: Arguments for the format string.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
