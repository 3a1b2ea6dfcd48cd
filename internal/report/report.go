// Package report prints the bracketed status lines the CLI speaks in:
//
//	[  OK  ] Successfully downloaded: button
//	[ INFO ] Skipped card. To overwrite, run with the --overwrite flag.
//	[ WARN ] Skipped empty component: empty
//	[FAILED] Component not found: ghost
package report

import (
	"fmt"
	"io"

	"tailfront/internal/tui/styles"
)

// Level is the severity of a status line
type Level int

const (
	LevelOK Level = iota
	LevelInfo
	LevelWarn
	LevelFailed
)

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelFailed:
		return "failed"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Badge returns the fixed-width bracketed tag for a level
func Badge(l Level) string {
	switch l {
	case LevelOK:
		return "[  " + styles.BadgeOK.Render("OK") + "  ]"
	case LevelInfo:
		return "[ " + styles.BadgeInfo.Render("INFO") + " ]"
	case LevelWarn:
		return "[ " + styles.BadgeWarn.Render("WARN") + " ]"
	case LevelFailed:
		return "[" + styles.BadgeFailed.Render("FAILED") + "]"
	default:
		return "[ " + styles.Muted.Render("UNK.") + " ]"
	}
}

// Format renders a single status line without a trailing newline
func Format(l Level, msg string) string {
	return Badge(l) + " " + msg
}

// Reporter writes status lines to an output stream
type Reporter struct {
	out     io.Writer
	verbose bool
}

// New creates a reporter. Progress lines are only written when verbose.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// Verbose reports whether step-level progress is shown
func (r *Reporter) Verbose() bool {
	return r.verbose
}

func (r *Reporter) line(l Level, format string, args ...any) {
	fmt.Fprintln(r.out, Format(l, fmt.Sprintf(format, args...)))
}

// OK prints a success line
func (r *Reporter) OK(format string, args ...any) {
	r.line(LevelOK, format, args...)
}

// Progress prints a success line in verbose mode only
func (r *Reporter) Progress(format string, args ...any) {
	if r.verbose {
		r.line(LevelOK, format, args...)
	}
}

// Info prints an informational line
func (r *Reporter) Info(format string, args ...any) {
	r.line(LevelInfo, format, args...)
}

// Warn prints a warning line
func (r *Reporter) Warn(format string, args ...any) {
	r.line(LevelWarn, format, args...)
}

// Failed prints a failure line
func (r *Reporter) Failed(format string, args ...any) {
	r.line(LevelFailed, format, args...)
}

// Block prints preformatted text followed by a blank line
func (r *Reporter) Block(text string) {
	fmt.Fprintln(r.out, text)
	fmt.Fprintln(r.out)
}
