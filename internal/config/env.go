// Package config provides the configuration management for the cyclecalc
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as uint64, or the default value if not set
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - CYCLECALC_STEP: Transition function name (string: counter, lcg, ...)
//   - CYCLECALC_INITIAL: Initial state of the sequence (uint64)
//   - CYCLECALC_MODULUS: State-space modulus (uint64)
//   - CYCLECALC_MUL: Multiplier coefficient for the lcg step (uint64)
//   - CYCLECALC_ADD: Increment coefficient for the lcg step (uint64)
//   - CYCLECALC_MODE: Operation to run (string: detect, resolve, repeat, stream)
//   - CYCLECALC_TARGET: Iteration to resolve (decimal string)
//   - CYCLECALC_MAX_ITERATIONS: Detection budget in iterations (int)
//   - CYCLECALC_STREAM_COUNT: Pairs to emit in stream mode (int)
//   - CYCLECALC_TIMEOUT: Execution timeout (duration: "5m", "30s")
//   - CYCLECALC_PORT: Port for server mode (string)
//   - CYCLECALC_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - CYCLECALC_JSON: Enable JSON output (bool)
//   - CYCLECALC_VERBOSE: Enable verbose output (bool)
//   - CYCLECALC_QUIET: Enable quiet mode (bool)
//   - CYCLECALC_NO_COLOR: Disable colored output (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "initial") {
		config.Initial = getEnvUint64("INITIAL", config.Initial)
	}
	if !isFlagSet(fs, "modulus") {
		config.Modulus = getEnvUint64("MODULUS", config.Modulus)
	}
	if !isFlagSet(fs, "mul") {
		config.Multiplier = getEnvUint64("MUL", config.Multiplier)
	}
	if !isFlagSet(fs, "add") {
		config.Increment = getEnvUint64("ADD", config.Increment)
	}
	if !isFlagSet(fs, "max-iterations") {
		config.MaxIterations = getEnvInt("MAX_ITERATIONS", config.MaxIterations)
	}
	if !isFlagSet(fs, "stream-count") {
		config.StreamCount = getEnvInt("STREAM_COUNT", config.StreamCount)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "step") {
		config.Step = getEnvString("STEP", config.Step)
	}
	if !isFlagSet(fs, "mode") {
		config.Mode = getEnvString("MODE", config.Mode)
	}
	if !isFlagSet(fs, "target") {
		config.Target = getEnvString("TARGET", config.Target)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
