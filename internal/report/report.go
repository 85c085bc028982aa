// Package report formats batch-run summaries for a terminal: color support
// is decided via mattn/go-isatty before writing anything,
// dustin/go-humanize comma-formats the entry counts, and durations are
// rounded to the millisecond.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether out should receive ANSI color codes: off
// when NO_COLOR is set (per https://no-color.org/), off when out isn't a
// terminal, on otherwise. Collapsed to a single on/off switch since
// jstrack's summary only ever needs bold/red/green, not palette-aware output.
func ColorEnabled(out *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
}

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

// Summary is the outcome of one scriptUrl's run, ready to format.
type Summary struct {
	ScriptURL  string
	EntryCount int
	Duration   time.Duration
	Err        error
}

// Render formats a batch of summaries as a human-readable report. color
// controls whether ANSI codes are emitted; callers typically pass
// ColorEnabled(os.Stdout).
func Render(summaries []Summary, color bool) string {
	var b strings.Builder
	var failed int
	for _, s := range summaries {
		status := ok(color)
		if s.Err != nil {
			status = fail(color)
			failed++
		}
		fmt.Fprintf(&b, "%s %s — %s entries in %s\n",
			status, s.ScriptURL,
			humanize.Comma(int64(s.EntryCount)),
			s.Duration.Round(time.Millisecond))
		if s.Err != nil {
			fmt.Fprintf(&b, "    %v\n", s.Err)
		}
	}
	fmt.Fprintf(&b, "%s\n", bold(color, fmt.Sprintf("%d run, %d failed", len(summaries), failed)))
	return b.String()
}

func ok(color bool) string {
	if !color {
		return "[ok]"
	}
	return colorGreen + "[ok]" + colorReset
}

func fail(color bool) string {
	if !color {
		return "[fail]"
	}
	return colorRed + "[fail]" + colorReset
}

func bold(color bool, s string) string {
	if !color {
		return s
	}
	return colorBold + s + colorReset
}
