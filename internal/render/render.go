// Package render provides pure formatters for detection results. No logic
// lives here: every function consumes pre-computed result values from the
// cycle package and produces display text. The detection entry points never
// import this package.
package render

import (
	"fmt"
	"math/big"
	"strings"
	"text/tabwriter"

	"github.com/agbru/cyclecalc/internal/cycle"
	"github.com/agbru/cyclecalc/internal/ui"
)

const (
	// DefaultMaxPrefix is the number of prefix states shown before eliding.
	DefaultMaxPrefix = 5
	// DefaultMaxCycle is the number of cycle states shown before eliding.
	DefaultMaxCycle = 10
	// DefaultMaxRows is the number of rows shown in the history table.
	DefaultMaxRows = 20
)

// NotFound formats the "not found" outcome of any detector.
//
// Returns:
//   - string: A single colored line.
func NotFound() string {
	return fmt.Sprintf("%sNo cycle found%s", ui.ColorRed(), ui.ColorReset())
}

// Cycle formats a Floyd detection result.
//
// Parameters:
//   - c: The detected cycle.
//
// Returns:
//   - string: A multi-line summary (start index, length, representative state).
func Cycle[S comparable](c cycle.Cycle[S]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sCycle detected:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(&b, "  Start index:    %s%d%s\n", ui.ColorYellow(), c.Start, ui.ColorReset())
	fmt.Fprintf(&b, "  Cycle length:   %s%d%s\n", ui.ColorMagenta(), c.Length, ui.ColorReset())
	fmt.Fprintf(&b, "  State at start: %s%v%s", ui.ColorCyan(), c.State, ui.ColorReset())
	return b.String()
}

// History formats a history detection result, showing the prefix and the
// cycle as arrow-joined state runs, eliding long runs.
//
// Parameters:
//   - h: The detected cycle with its state history.
//   - maxPrefix: Maximum prefix states to show (<= 0 applies DefaultMaxPrefix).
//   - maxCycle: Maximum cycle states to show (<= 0 applies DefaultMaxCycle).
//
// Returns:
//   - string: A multi-line summary.
func History[S comparable](h cycle.History[S], maxPrefix, maxCycle int) string {
	if maxPrefix <= 0 {
		maxPrefix = DefaultMaxPrefix
	}
	if maxCycle <= 0 {
		maxCycle = DefaultMaxCycle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%sCycle with history:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(&b, "  Start index:  %s%d%s\n", ui.ColorYellow(), h.Start, ui.ColorReset())
	fmt.Fprintf(&b, "  Cycle length: %s%d%s\n", ui.ColorMagenta(), h.Length, ui.ColorReset())
	fmt.Fprintf(&b, "  Total states: %s%d%s\n", ui.ColorCyan(), len(h.States), ui.ColorReset())

	// Prefix run.
	if h.Start > 0 {
		shown := h.Start
		if shown > maxPrefix {
			shown = maxPrefix
		}
		parts := make([]string, shown)
		for i := 0; i < shown; i++ {
			parts[i] = fmt.Sprintf("%s%v%s", ui.ColorYellow(), h.States[i], ui.ColorReset())
		}
		line := strings.Join(parts, fmt.Sprintf("%s -> %s", ui.ColorDim(), ui.ColorReset()))
		if h.Start > maxPrefix {
			line += fmt.Sprintf("%s -> ... (%d more)%s", ui.ColorDim(), h.Start-maxPrefix, ui.ColorReset())
		}
		fmt.Fprintf(&b, "  %sPrefix:%s %s\n", ui.ColorDim(), ui.ColorReset(), line)
	} else {
		fmt.Fprintf(&b, "  %sPrefix:%s %s(none)%s\n", ui.ColorDim(), ui.ColorReset(), ui.ColorDim(), ui.ColorReset())
	}

	// Cycle run.
	cycleStates := h.States[h.Start:]
	shown := len(cycleStates)
	if shown > maxCycle {
		shown = maxCycle
	}
	parts := make([]string, shown)
	for i := 0; i < shown; i++ {
		parts[i] = fmt.Sprintf("%s%v%s", ui.ColorCyan(), cycleStates[i], ui.ColorReset())
	}
	line := strings.Join(parts, fmt.Sprintf("%s -> %s", ui.ColorGreen(), ui.ColorReset()))
	if len(cycleStates) > maxCycle {
		line += fmt.Sprintf("%s -> ... (%d more)%s", ui.ColorDim(), len(cycleStates)-maxCycle, ui.ColorReset())
	}
	fmt.Fprintf(&b, "  %sCycle:%s  [%s] %s(repeats)%s", ui.ColorDim(), ui.ColorReset(), line, ui.ColorGreen(), ui.ColorReset())

	return b.String()
}

// Repeat formats a repeat-finder result.
//
// Parameters:
//   - r: The first-repeat result.
//
// Returns:
//   - string: A single line naming the iteration and the recurring state.
func Repeat[S comparable](r cycle.Repeat[S]) string {
	return fmt.Sprintf("First repeat at iteration %s%d%s, state: %s%v%s",
		ui.ColorGreen(), r.Iteration, ui.ColorReset(),
		ui.ColorCyan(), r.State, ui.ColorReset())
}

// Lookup formats the jump-ahead arithmetic behind a StateAt resolution, so
// the user can follow how the target index was reduced into the history.
//
// Parameters:
//   - target: The requested iteration.
//   - c: The cycle used for the reduction.
//   - state: The resolved state.
//
// Returns:
//   - string: A multi-line breakdown of the modular reduction.
func Lookup[S comparable](target *big.Int, c cycle.Cycle[S], state S) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sIteration lookup:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(&b, "  Target:       %s%s%s\n", ui.ColorCyan(), formatBig(target), ui.ColorReset())
	fmt.Fprintf(&b, "  Cycle start:  %s%d%s\n", ui.ColorYellow(), c.Start, ui.ColorReset())
	fmt.Fprintf(&b, "  Cycle length: %s%d%s\n", ui.ColorMagenta(), c.Length, ui.ColorReset())

	if target.Cmp(big.NewInt(int64(c.Start))) < 0 {
		fmt.Fprintf(&b, "  Target in prefix: history[%s%s%s]\n", ui.ColorCyan(), target, ui.ColorReset())
	} else {
		after := new(big.Int).Sub(target, big.NewInt(int64(c.Start)))
		position := new(big.Int).Mod(after, big.NewInt(int64(c.Length)))
		index := c.Start + int(position.Int64())

		fmt.Fprintf(&b, "  Steps after start: %s%s%s\n", ui.ColorYellow(), formatBig(after), ui.ColorReset())
		fmt.Fprintf(&b, "  Position: %s%s%s mod %s%d%s = %s%s%s\n",
			ui.ColorYellow(), formatBig(after), ui.ColorReset(),
			ui.ColorMagenta(), c.Length, ui.ColorReset(),
			ui.ColorGreen(), position, ui.ColorReset())
		fmt.Fprintf(&b, "  Index: %s%d%s + %s%s%s = %s%d%s\n",
			ui.ColorYellow(), c.Start, ui.ColorReset(),
			ui.ColorGreen(), position, ui.ColorReset(),
			ui.ColorCyan(), index, ui.ColorReset())
	}

	fmt.Fprintf(&b, "  Result: %s%s%v%s", ui.ColorBold(), ui.ColorGreen(), state, ui.ColorReset())
	return b.String()
}

// StateAtTarget formats a resolved state as a single line.
//
// Parameters:
//   - target: The requested iteration.
//   - state: The resolved state.
//
// Returns:
//   - string: The formatted line.
func StateAtTarget[S comparable](target *big.Int, state S) string {
	return fmt.Sprintf("State at iteration %s%s%s: %s%s%v%s",
		ui.ColorCyan(), formatBig(target), ui.ColorReset(),
		ui.ColorBold(), ui.ColorGreen(), state, ui.ColorReset())
}

// HistoryTable formats the state history as a table with a phase column
// (prefix, cycle start, cycle position). Long histories show the head and
// tail with an elision row in between.
//
// Parameters:
//   - h: The detected cycle with its state history.
//   - maxRows: Maximum rows to display (<= 0 applies DefaultMaxRows).
//
// Returns:
//   - string: The rendered table.
func HistoryTable[S comparable](h cycle.History[S], maxRows int) string {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sStep\tState\tPhase%s\n", ui.ColorUnderline(), ui.ColorReset())

	total := len(h.States)
	var indices []int
	ellipsisAfter := -1
	if total <= maxRows {
		indices = make([]int, total)
		for i := range indices {
			indices[i] = i
		}
	} else {
		head := maxRows * 2 / 3
		tail := maxRows - head - 1
		for i := 0; i < head; i++ {
			indices = append(indices, i)
		}
		ellipsisAfter = head - 1
		for i := total - tail; i < total; i++ {
			indices = append(indices, i)
		}
	}

	for pos, idx := range indices {
		var phase string
		switch {
		case idx < h.Start:
			phase = fmt.Sprintf("%sprefix%s", ui.ColorYellow(), ui.ColorReset())
		case idx == h.Start:
			phase = fmt.Sprintf("%s<- cycle start%s", ui.ColorGreen(), ui.ColorReset())
		default:
			phase = fmt.Sprintf("%scycle[%d]%s", ui.ColorCyan(), idx-h.Start, ui.ColorReset())
		}
		fmt.Fprintf(tw, "%d\t%v\t%s\n", idx, h.States[idx], phase)

		if pos == ellipsisAfter {
			fmt.Fprintf(tw, "...\t...\t%s(%d more)%s\n", ui.ColorDim(), total-maxRows, ui.ColorReset())
		}
	}

	tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// formatBig inserts thousand separators into a big integer's decimal form.
func formatBig(n *big.Int) string {
	s := n.String()
	prefix := ""
	if strings.HasPrefix(s, "-") {
		prefix = "-"
		s = s[1:]
	}
	if len(s) <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + len(s) + (len(s)-1)/3)
	b.WriteString(prefix)

	first := len(s) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
