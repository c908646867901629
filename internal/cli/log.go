// Package cli implements the mosaic command-line interface.
//
// The commands load a problem file (TOML), run or finalize the local search
// through the pipeline package, and write coordinate records, JSON, SVG or
// Graphviz output. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - run: search a cartogram, optionally from an initial coordinate file
//   - finalize: repair and polish an existing coordinate file
//   - validate: check a coordinate file and print per-region statistics
//   - dual: draw the weak dual of a problem
//   - inspect: browse the regions of a grid interactively
//   - cache: manage the checkpoint cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per search iteration.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Search finished (1.234s)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg+" ("+time.Since(p.start).Round(time.Millisecond).String()+")", keyvals...)
}
