package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/ast"
	"github.com/mvcisback/pytypedecl/internal/format"
	"github.com/mvcisback/pytypedecl/internal/parser"
)

var (
	fmtWrite bool
	fmtList  bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Format declaration files canonically",
	Long: `Fmt parses each file and renders it back in canonical form: grouped
declarations, normalized spacing, and explicit mutator blocks. By
default the result goes to stdout.

Files that fail to parse are reported and skipped; the remaining files
are still processed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result back to the source file")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff instead of the formatted text")
}

// renderCanonical prints mod with the indent width from the project
// file. Shared by fmt, parse --ast, watch, and the interactive loop.
func renderCanonical(mod *ast.Module) string {
	opts := format.DefaultPrintOptions()
	if projectConfig.Fmt.Indent > 0 {
		opts.IndentSize = projectConfig.Fmt.Indent
	}
	return format.NewPrinter(opts).Print(mod)
}

func runFmt(cmd *cobra.Command, args []string) error {
	write := fmtWrite || projectConfig.Fmt.Write
	failed := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			report(err)
			failed = true
			continue
		}
		mod, err := parser.Parse(string(data), path)
		if err != nil {
			report(err)
			failed = true
			continue
		}
		out := renderCanonical(mod)

		switch {
		case fmtDiff:
			name := filepath.Base(path)
			if d := format.Diff(name, string(data), out, format.DefaultDiffOptions()); d != "" {
				fmt.Print(d)
			}
		case fmtList:
			if out != string(data) {
				fmt.Println(path)
			}
		case write:
			if out == string(data) {
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0o666); err != nil {
				report(err)
				failed = true
				continue
			}
			logger.Info("%s: rewritten", path)
		default:
			fmt.Print(out)
		}
	}
	if failed {
		return errReported
	}
	return nil
}
