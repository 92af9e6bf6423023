package commands

import (
	"fmt"

	"github.com/dyluth/unifiable/internal/config"
	"github.com/dyluth/unifiable/internal/document"
	"github.com/dyluth/unifiable/internal/filter"
	"github.com/dyluth/unifiable/internal/printer"
	"github.com/dyluth/unifiable/internal/report"
	"github.com/dyluth/unifiable/pkg/unification"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	placeholderFlags
	output  string
	verbose bool
	selects []string
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check EXPECTED ACTUAL",
		Short: "Unify an expected document with an actual one",
		Long: `Unify an expected document with an actual one and print the placeholder bindings.

Both files are YAML (JSON is valid YAML). In the expected document an unquoted
scalar matching the placeholder pattern (default ^_) is a placeholder; quote it
to match the literal string instead. The wildcard (default _) matches anything
and is never bound. Tag a scalar with !sym to force a symbol in either document.

Output Formats:
  auto  - table on a terminal, JSON otherwise (default)
  table - Human-readable placeholder/value table
  json  - JSON object of placeholder names to values
  yaml  - YAML mapping with symbols tagged !sym; loads back into "unify apply"
          without losing symbol or timestamp types

Examples:
  # Check an API response against a fixture
  unify check expected.yml response.json

  # Use $-prefixed placeholders
  unify check --pattern '^\$' --wildcard '$_' expected.yml actual.yml

  # Only report placeholders starting with _user
  unify check --select '_user*' expected.yml actual.yml

  # Trace the solver
  unify check --verbose expected.yml actual.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0], args[1])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: auto, table, json or yaml (overrides config)")
	cmd.Flags().StringSliceVarP(&opts.selects, "select", "s", nil, "Only report placeholders matching these globs (repeatable)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every solver step to stderr")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, expectedPath, actualPath string) error {
	cfg, err := opts.loadConfig(cmd, opts.output)
	if err != nil {
		return err
	}

	criteria := &filter.Criteria{NameGlobs: opts.selects}
	if err := criteria.Validate(); err != nil {
		return printer.Error("Invalid flag value", err.Error(), []string{"Check the globs passed to --select"})
	}

	unifyOpts := cfg.Options()
	if opts.verbose {
		unifyOpts.Logf = debugLogf(cmd)
	}

	loader := document.NewLoader(unifyOpts)
	expected, err := loader.LoadFile(expectedPath, document.Expected)
	if err != nil {
		return printer.Error("Failed to load expected document", err.Error(), nil)
	}
	actual, err := loader.LoadFile(actualPath, document.Actual)
	if err != nil {
		return printer.Error("Failed to load actual document", err.Error(), nil)
	}

	format, err := report.ResolveFormat(cfg.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return printer.Error("Invalid output format", err.Error(), []string{"Use --output auto, table, json or yaml"})
	}

	bindings, err := unification.NewUnifier(unifyOpts).Unify(expected, actual, unification.StrictEqual)
	if err != nil {
		return reportFailure(cfg, expectedPath, actualPath, err)
	}
	bindings = criteria.Apply(bindings)

	out := cmd.OutOrStdout()
	switch format {
	case report.OutputFormatJSON:
		if err := report.FormatJSON(out, bindings); err != nil {
			return printer.Error("Failed to write bindings", err.Error(), nil)
		}
	case report.OutputFormatYAML:
		if err := report.FormatBindingsYAML(out, bindings); err != nil {
			return printer.Error("Failed to write bindings", err.Error(), nil)
		}
	default:
		printer.Success("%s unifies with %s\n\n", expectedPath, actualPath)
		report.FormatTable(out, bindings, report.TableOptions{TimeFormat: cfg.Output.TimeFormat})
	}
	return nil
}

func reportFailure(cfg *config.UnifyConfig, expectedPath, actualPath string, err error) error {
	mismatch, ok := unification.AsMismatch(err)
	if !ok {
		return printer.Error("Unification failed", err.Error(), nil)
	}

	timeFormat := cfg.Output.TimeFormat
	failure := printer.ErrorWithContext(
		"Documents do not unify",
		fmt.Sprintf("%s does not match %s.", actualPath, expectedPath),
		[]printer.Detail{
			{Label: "Path", Value: unification.DisplayPath(mismatch.Path)},
			{Label: "Expected", Value: report.FormatValue(mismatch.Expected, timeFormat)},
			{Label: "Actual", Value: report.FormatValue(mismatch.Actual, timeFormat)},
		},
		nil,
	)
	printer.Diff(mismatch.Diff)
	return failure
}
