package commands

import (
	"sort"
	"strings"

	"github.com/dyluth/unifiable/internal/document"
	"github.com/dyluth/unifiable/internal/printer"
	"github.com/dyluth/unifiable/internal/report"
	"github.com/dyluth/unifiable/pkg/unification"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	flags := &placeholderFlags{}

	cmd := &cobra.Command{
		Use:   "apply TEMPLATE BINDINGS",
		Short: "Substitute bindings into a template document",
		Long: `Substitute placeholder bindings into a template document and print the result as YAML.

BINDINGS is a mapping of placeholder names to values, such as the output of
"unify check --output yaml". Placeholders without a binding are left in place.

JSON bindings ("unify check --output json") also load, but JSON has no symbol or
timestamp types: symbols and times come back as plain strings. Use YAML output to
keep them.

Examples:
  unify check --output yaml expected.yml actual.yml > bindings.yml
  unify apply next-request.yml bindings.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, flags, args[0], args[1])
		},
	}

	flags.register(cmd)
	return cmd
}

func runApply(cmd *cobra.Command, flags *placeholderFlags, templatePath, bindingsPath string) error {
	cfg, err := flags.loadConfig(cmd, "")
	if err != nil {
		return err
	}

	unifyOpts := cfg.Options()
	loader := document.NewLoader(unifyOpts)

	template, err := loader.LoadFile(templatePath, document.Expected)
	if err != nil {
		return printer.Error("Failed to load template", err.Error(), nil)
	}
	bindings, err := loader.LoadBindings(bindingsPath)
	if err != nil {
		return printer.Error("Failed to load bindings", err.Error(),
			[]string{"Bindings must be a mapping of placeholder names to values"})
	}

	unifier := unification.NewUnifier(unifyOpts)
	result := unifier.Registry().Apply(bindings, template)
	if err := report.FormatYAML(cmd.OutOrStdout(), result); err != nil {
		return printer.Error("Failed to write document", err.Error(), nil)
	}

	if names := unboundPlaceholders(unifier, result); len(names) > 0 {
		printer.Warning("%d placeholder(s) left unbound: %s\n", len(names), strings.Join(names, ", "))
	}
	return nil
}

// unboundPlaceholders lists the distinct placeholders remaining in v, sorted.
// The wildcard is never reported.
func unboundPlaceholders(u *unification.Unifier, v any) []string {
	seen := make(map[string]bool)
	var walk func(any)
	walk = func(v any) {
		switch x := v.(type) {
		case []any:
			for _, elem := range x {
				walk(elem)
			}
		case map[string]any:
			for _, elem := range x {
				walk(elem)
			}
		case unification.Symbol:
			if u.IsPlaceholder(x) && !u.IsWildcard(x) {
				seen[string(x)] = true
			}
		}
	}
	walk(v)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
