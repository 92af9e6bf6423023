package commands

import (
	"fmt"
	"log"

	"github.com/dyluth/unifiable/internal/config"
	"github.com/dyluth/unifiable/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unify",
		Short: "Unify - structural matching of documents with placeholders",
		Long: `Unify compares an expected document against an actual one. Expected documents
may contain placeholders (plain scalars such as _id) that match any value; every
placeholder must match the same value wherever it appears.

On success the bindings found for each placeholder are printed. On failure the
first mismatching path is reported.`,
		Version: version,
		// Prevent silent success when unknown flags are passed to root command
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is specified, show help
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			printer.Stdout = cmd.OutOrStdout()
			printer.Stderr = cmd.ErrOrStderr()
		},
		// Enable strict flag parsing - unknown flags will cause an error
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	cmd.AddCommand(newCheckCmd(), newApplyCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = versionString()
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// placeholderFlags are shared by every command that reads documents.
type placeholderFlags struct {
	configPath string
	pattern    string
	wildcard   string
}

func (f *placeholderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Path to configuration file")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Regular expression recognising placeholders (overrides config)")
	cmd.Flags().StringVar(&f.wildcard, "wildcard", "", "Placeholder that matches anything without binding (overrides config)")
}

// loadConfig reads the configuration file and applies flag overrides.
// The default config path may be absent; an explicitly given one must exist.
func (f *placeholderFlags) loadConfig(cmd *cobra.Command, format string) (*config.UnifyConfig, error) {
	cfg, err := config.LoadOrDefault(f.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, printer.ErrorWithContext(
			"Invalid configuration",
			err.Error(),
			[]printer.Detail{{Label: "Config", Value: f.configPath}},
			[]string{
				"Fix the configuration file",
				"Pass --config with a different path",
			},
		)
	}

	if err := cfg.Override(f.pattern, f.wildcard, format); err != nil {
		return nil, printer.Error(
			"Invalid flag value",
			err.Error(),
			[]string{"Check the values passed to --pattern, --wildcard and --output"},
		)
	}
	return cfg, nil
}

// debugLogf returns a Logf hook writing solver traces to the command's stderr.
func debugLogf(cmd *cobra.Command) func(format string, v ...any) {
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags).Printf
}
