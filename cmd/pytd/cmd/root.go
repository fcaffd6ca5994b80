// Package cmd implements the pytd umbrella command.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/cli"
	"github.com/mvcisback/pytypedecl/internal/config"
	"github.com/mvcisback/pytypedecl/internal/diagnostic"
)

var (
	cfgFile   string
	colorFlag string
	verbose   bool
	debugMode bool

	projectConfig config.Config
	colorMode     cli.ColorMode
	logger        *cli.Logger
)

// errReported marks errors the command already printed, so Execute
// does not print them a second time.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "pytd",
	Short: "Tools for pytd type declaration files",
	Long: `pytd parses, checks, and formats .pytd type declaration files.

A declaration file describes classes, functions with overloaded
signatures, and constants, together with their types. The tools here
turn those files into syntax trees, report precise diagnostics, and
render canonical source text.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Errors not already reported by a
// subcommand are printed here once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "project file (default: ./pytd.toml or ./pytd.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "colorize diagnostics: auto, always, or never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "debug output")
}

// setup loads the project file and resolves the shared settings before
// any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	logger = cli.NewLogger(verbose, debugMode)

	var err error
	if cfgFile != "" {
		projectConfig, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger.Debug("config loaded from %s", cfgFile)
	} else {
		var path string
		projectConfig, path, err = config.LoadDir(".")
		if err != nil {
			return err
		}
		if path != "" {
			logger.Debug("config loaded from %s", path)
		}
	}

	// The version gate must never lock out `pytd version` itself.
	if cmd.Name() != "version" {
		if err := projectConfig.CheckVersion(cli.Version); err != nil {
			return err
		}
	}

	mode := colorFlag
	if mode == "" {
		mode = projectConfig.Color
	}
	colorMode, err = cli.ParseColorMode(mode)
	if err != nil {
		return err
	}
	return nil
}

// report prints err, styled when it is a parse diagnostic.
func report(err error) {
	var d *diagnostic.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(os.Stderr, cli.RenderDiagnostic(d, colorMode.Enabled(os.Stderr)))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// fail prints err once and returns the already-reported marker for the
// exit code.
func fail(err error) error {
	report(err)
	return errReported
}
