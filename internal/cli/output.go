// Package cli provides output utilities for quiet-mode scripting and the
// streaming display of sequences.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/cyclecalc/internal/cycle"
	"github.com/agbru/cyclecalc/internal/render"
)

// FormatQuietDetection formats a detection result for quiet mode output.
// Returns a single-line result suitable for scripting: "start length state"
// when a cycle was found, "none" otherwise.
//
// Parameters:
//   - c: The detected cycle.
//   - found: Whether a cycle was detected within the budget.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietDetection(c cycle.Cycle[uint64], found bool) string {
	if !found {
		return "none"
	}
	return fmt.Sprintf("%d %d %d", c.Start, c.Length, c.State)
}

// DisplayQuietDetection outputs a detection result in quiet mode.
//
// Parameters:
//   - out: The output writer.
//   - c: The detected cycle.
//   - found: Whether a cycle was detected within the budget.
func DisplayQuietDetection(out io.Writer, c cycle.Cycle[uint64], found bool) {
	fmt.Fprintln(out, FormatQuietDetection(c, found))
}

// StreamSequence pulls up to count pairs from the iterator and prints them
// one per line. The first pair whose state closes the cycle is annotated, so
// a user watching the stream sees the moment detection fires.
//
// In quiet mode each line is just "iteration state" with no annotations,
// suitable for piping into other tools.
//
// Parameters:
//   - ctx: The context bounding the stream.
//   - it: The sequence iterator to pull from.
//   - count: The maximum number of pairs to emit.
//   - quiet: If true, emits unannotated machine-readable lines.
//   - out: The output writer.
//
// Returns:
//   - error: A context error if the stream was interrupted, or
//     cycle.ErrBudgetExhausted when the iterator's budget ran out under the
//     Stop policy. A completed stream returns nil.
func StreamSequence(ctx context.Context, it *cycle.Iterator[uint64], count int, quiet bool, out io.Writer) error {
	announced := false
	for i := 0; i < count; i++ {
		pair, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, cycle.ErrBudgetExhausted) {
				fmt.Fprintf(out, "%sbudget exhausted after %d iterations%s\n", ColorYellow(), it.Index(), ColorReset())
			}
			return err
		}

		if quiet {
			fmt.Fprintf(out, "%d %d\n", pair.Iteration, pair.State)
			continue
		}

		fmt.Fprintf(out, "%s%6d%s  %s%v%s", ColorCyan(), pair.Iteration, ColorReset(), ColorGreen(), pair.State, ColorReset())
		if c, ok := it.Detected(); ok && !announced {
			announced = true
			fmt.Fprintf(out, "  %s<- cycle detected (start %d, length %d)%s", ColorBold(), c.Start, c.Length, ColorReset())
		}
		fmt.Fprintln(out)
	}

	if !quiet {
		if c, ok := it.Detected(); ok {
			fmt.Fprintf(out, "\n%s\n", render.Cycle(c))
		} else {
			fmt.Fprintf(out, "\n%s(no cycle detected in %d pairs)%s\n", ColorYellow(), count, ColorReset())
		}
	}
	return nil
}
