// Package report renders unification results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/dyluth/unifiable/internal/document"
	"github.com/dyluth/unifiable/pkg/unification"
)

// OutputFormat selects how bindings are written.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// DefaultMaxValueWidth is the display width at which table values are truncated
const DefaultMaxValueWidth = 60

// TableOptions controls table rendering.
type TableOptions struct {
	TimeFormat    string // strftime layout for time.Time values
	MaxValueWidth int    // Truncate values wider than this (0 = DefaultMaxValueWidth)
}

// ResolveFormat maps a configured format name to an OutputFormat.
// "auto" picks the table when out is a terminal and JSON otherwise, so piped output
// stays machine-readable. "yaml" is the lossless form read back by LoadBindings.
func ResolveFormat(name string, out io.Writer) (OutputFormat, error) {
	switch name {
	case "table":
		return OutputFormatTable, nil
	case "json":
		return OutputFormatJSON, nil
	case "yaml":
		return OutputFormatYAML, nil
	case "auto", "":
		if isTerminal(out) {
			return OutputFormatTable, nil
		}
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", name)
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatTable writes bindings as an aligned two-column table sorted by placeholder name.
// Returns the number of bindings written.
func FormatTable(w io.Writer, bindings unification.Bindings, opts TableOptions) int {
	if len(bindings) == 0 {
		fmt.Fprintln(w, "No bindings")
		return 0
	}

	maxWidth := opts.MaxValueWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxValueWidth
	}

	names := bindings.Names()
	nameWidth := runewidth.StringWidth("PLACEHOLDER")
	for _, name := range names {
		if width := runewidth.StringWidth(string(name)); width > nameWidth {
			nameWidth = width
		}
	}

	fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight("PLACEHOLDER", nameWidth), "VALUE")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 5))

	for _, name := range names {
		value := runewidth.Truncate(FormatValue(bindings[name], opts.TimeFormat), maxWidth, "...")
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(string(name), nameWidth), value)
	}

	countMsg := "binding"
	if len(names) != 1 {
		countMsg = "bindings"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(names), countMsg)

	return len(names)
}

// FormatJSON writes bindings as a pretty-printed JSON object.
func FormatJSON(w io.Writer, bindings unification.Bindings) error {
	if bindings == nil {
		bindings = unification.Bindings{}
	}

	data, err := json.MarshalIndent(bindings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bindings to JSON: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// FormatYAML writes a value tree as a YAML document.
func FormatYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document to YAML: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write YAML output: %w", err)
	}
	return nil
}

// FormatBindingsYAML writes bindings as a YAML mapping that loads back without loss:
// symbols carry the !sym tag and times are written as YAML timestamps.
func FormatBindingsYAML(w io.Writer, bindings unification.Bindings) error {
	tree := make(map[string]any, len(bindings))
	for name, v := range bindings {
		tree[string(name)] = tagSymbols(v)
	}
	return FormatYAML(w, tree)
}

// tagSymbols replaces every Symbol in v with a tagged YAML scalar node.
func tagSymbols(v any) any {
	switch x := v.(type) {
	case unification.Symbol:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: document.SymbolTag, Value: string(x)}
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = tagSymbols(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, elem := range x {
			out[key] = tagSymbols(elem)
		}
		return out
	default:
		return v
	}
}

// FormatValue renders a value on a single line. Strings are quoted so they can be
// told apart from symbols; composites use a compact flow style with sorted keys.
// An empty timeFormat renders times as RFC3339.
func FormatValue(v any, timeFormat string) string {
	var b strings.Builder
	writeValue(&b, v, timeFormat)
	return b.String()
}

func writeValue(b *strings.Builder, v any, timeFormat string) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(x))
	case unification.Symbol:
		b.WriteString(string(x))
	case time.Time:
		if timeFormat == "" {
			b.WriteString(x.Format(time.RFC3339Nano))
		} else {
			b.WriteString(timefmt.Format(x, timeFormat))
		}
	case []any:
		b.WriteString("[")
		for i, elem := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, elem, timeFormat)
		}
		b.WriteString("]")
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		b.WriteString("{")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(key)
			b.WriteString(": ")
			writeValue(b, x[key], timeFormat)
		}
		b.WriteString("}")
	default:
		fmt.Fprintf(b, "%v", x)
	}
}
