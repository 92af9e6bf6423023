package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Stdout receives regular output; Stderr receives errors. Tests may swap them.
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	faint  = color.New(color.Faint)
)

// Detail is a labelled line of error context. Details print in the order given.
type Detail struct {
	Label string
	Value string
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Fprintf(Stdout, "✓ %s", msg)
	} else {
		green.Fprint(Stdout, msg)
	}
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(Stderr, "⚠️  %s", msg)
	} else {
		yellow.Fprint(Stderr, msg)
	}
}

// Error creates a formatted error message with title, explanation, and suggestions
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func Error(title string, explanation string, suggestions []string) error {
	return ErrorWithContext(title, explanation, nil, suggestions)
}

// ErrorWithContext creates a formatted error with context details
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func ErrorWithContext(title string, explanation string, details []Detail, suggestions []string) error {
	// Print title in red to stderr
	red.Fprintf(Stderr, "%s\n\n", title)

	// Print explanation
	if explanation != "" {
		fmt.Fprintf(Stderr, "%s\n", explanation)
	}

	// Print context details, continuation lines indented under the value
	if len(details) > 0 {
		fmt.Fprintf(Stderr, "\n")
		width := 0
		for _, d := range details {
			if len(d.Label)+1 > width {
				width = len(d.Label) + 1
			}
		}
		indent := strings.Repeat(" ", width+4)
		for _, d := range details {
			value := strings.ReplaceAll(strings.TrimRight(d.Value, "\n"), "\n", "\n"+indent)
			fmt.Fprintf(Stderr, "  %-*s  %s\n", width, d.Label+":", value)
		}
	}

	// Print suggestions
	if len(suggestions) > 0 {
		fmt.Fprintf(Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}

// Diff prints a -expected/+actual diff to stderr, coloring removed and added lines
func Diff(diff string) {
	if diff == "" {
		return
	}
	fmt.Fprintf(Stderr, "\nDiff (-expected +actual):\n")
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "-"):
			red.Fprintln(Stderr, line)
		case strings.HasPrefix(trimmed, "+"):
			green.Fprintln(Stderr, line)
		default:
			faint.Fprintln(Stderr, line)
		}
	}
}
