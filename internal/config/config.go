// Package config provides the configuration management for the cyclecalc
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/agbru/cyclecalc/internal/cycle"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
	"github.com/agbru/cyclecalc/internal/steps"
)

const (
	// EnvPrefix is the prefix for all environment variables used by cyclecalc.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "CYCLECALC_"
)

// Execution modes accepted by the -mode flag.
const (
	// ModeDetect runs cycle detection and reports start, length and state.
	ModeDetect = "detect"
	// ModeResolve resolves the state at the -target iteration.
	ModeResolve = "resolve"
	// ModeRepeat reports the first iteration at which any state repeats.
	ModeRepeat = "repeat"
	// ModeStream emits the sequence pair by pair, annotating cycle detection.
	ModeStream = "stream"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultStep is the default transition function name.
	DefaultStep = "lcg"
	// DefaultModulus is the default state-space modulus.
	DefaultModulus uint64 = 1 << 20
	// DefaultMultiplier is the default lcg 'a' coefficient (MINSTD).
	DefaultMultiplier uint64 = 16807
	// DefaultIncrement is the default lcg 'c' coefficient.
	DefaultIncrement uint64 = 0
	// DefaultMode is the default execution mode.
	DefaultMode = ModeDetect
	// DefaultTarget is the default -target iteration for resolve mode.
	DefaultTarget = "1000000000000"
	// DefaultTimeout is the default execution timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultStreamCount is the default number of pairs emitted in stream mode.
	DefaultStreamCount = 50
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the transition function and its parameters to the
// execution mode and output options.
type AppConfig struct {
	// Step names the transition function from the steps registry.
	Step string
	// Initial is the starting state of the sequence.
	Initial uint64
	// Modulus bounds the state space for modular step functions.
	Modulus uint64
	// Multiplier is the 'a' coefficient for the lcg step.
	Multiplier uint64
	// Increment is the 'c' coefficient for the lcg step.
	Increment uint64
	// Mode selects the operation: detect, resolve, repeat or stream.
	Mode string
	// Target is the iteration to resolve in resolve mode, in decimal.
	// Kept as a string so targets beyond uint64 parse exactly.
	Target string
	// MaxIterations bounds every detector. Zero applies the library default.
	MaxIterations int
	// StreamCount is the number of pairs emitted in stream mode.
	StreamCount int
	// Timeout sets the maximum duration for the run.
	Timeout time.Duration
	// Verbose, if true, shows the full state history alongside the result.
	Verbose bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, banners, and informational messages.
	Quiet bool
	// ShowVersion, if true, prints version information and exits.
	ShowVersion bool
}

// ToStepParams converts the application configuration into steps.Params for
// building the transition function.
func (c AppConfig) ToStepParams() steps.Params {
	return steps.Params{
		Modulus:    c.Modulus,
		Multiplier: c.Multiplier,
		Increment:  c.Increment,
	}
}

// TargetInt parses the Target string as an exact arbitrary-precision integer.
//
// Returns:
//   - *big.Int: The parsed target.
//   - error: A ConfigError if the string is not a non-negative decimal integer.
func (c AppConfig) TargetInt() (*big.Int, error) {
	target, ok := new(big.Int).SetString(c.Target, 10)
	if !ok {
		return nil, apperrors.NewConfigError("target must be a decimal integer: '%s'", c.Target)
	}
	if target.Sign() < 0 {
		return nil, apperrors.NewConfigError("target cannot be negative: %s", c.Target)
	}
	return target, nil
}

// DetectionOptions converts the configuration into cycle.Options for the
// detectors. The observer is attached by the caller.
func (c AppConfig) DetectionOptions() cycle.Options {
	return cycle.Options{MaxIterations: c.MaxIterations}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges, that the chosen
// step function is registered, and that mode-specific requirements hold.
//
// Parameters:
//   - availableSteps: A slice of strings listing the valid step names
//     (e.g., ["counter", "lcg"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableSteps []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxIterations < 0 {
		return apperrors.NewConfigError("max-iterations cannot be negative: %d", c.MaxIterations)
	}

	isStepAvailable := false
	for _, s := range availableSteps {
		if s == c.Step {
			isStepAvailable = true
			break
		}
	}
	if !isStepAvailable {
		return apperrors.NewConfigError("unrecognized step function: '%s'. Valid steps are: [%s]", c.Step, strings.Join(availableSteps, ", "))
	}

	switch c.Mode {
	case ModeDetect, ModeRepeat:
	case ModeResolve:
		if _, err := c.TargetInt(); err != nil {
			return err
		}
	case ModeStream:
		if c.StreamCount <= 0 {
			return apperrors.NewConfigError("stream-count must be strictly positive: %d", c.StreamCount)
		}
	default:
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: %s, %s, %s, %s",
			c.Mode, ModeDetect, ModeResolve, ModeRepeat, ModeStream)
	}

	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values, and
// handles the parsing process. After parsing, it performs validation on the
// resulting configuration.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableSteps: A slice of valid step function names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSteps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	stepHelp := fmt.Sprintf("Transition function to iterate: one of [%s].", strings.Join(availableSteps, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Step, "step", DefaultStep, stepHelp)
	fs.Uint64Var(&config.Initial, "initial", 1, "Initial state of the sequence.")
	fs.Uint64Var(&config.Modulus, "modulus", DefaultModulus, "Modulus bounding the state space of modular steps.")
	fs.Uint64Var(&config.Multiplier, "mul", DefaultMultiplier, "Multiplier coefficient for the lcg step.")
	fs.Uint64Var(&config.Increment, "add", DefaultIncrement, "Increment coefficient for the lcg step.")
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Operation to run: detect, resolve, repeat or stream.")
	fs.StringVar(&config.Target, "target", DefaultTarget, "Iteration to resolve in resolve mode (decimal, arbitrary size).")
	fs.IntVar(&config.MaxIterations, "max-iterations", 0, "Detection budget in iterations (0 uses the library default).")
	fs.IntVar(&config.StreamCount, "stream-count", DefaultStreamCount, "Number of pairs to emit in stream mode.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the run.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full state history alongside the result.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Step = strings.ToLower(config.Step)
	config.Mode = strings.ToLower(config.Mode)
	if err := config.Validate(availableSteps); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
