package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/parser"
)

var parseAST bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse declaration files",
	Long: `Parse reads each file and builds its syntax tree. The first file
that fails to parse stops the run with a diagnostic.

With --ast the parsed declarations are printed back in canonical form,
which shows exactly what the parser understood.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseAST, "ast", "a", false, "print the parsed declarations in canonical form")
}

func runParse(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		mod, err := parser.ParseFile(path)
		if err != nil {
			return fail(err)
		}
		logger.Info("%s: %d constants, %d functions, %d classes", path,
			len(mod.Constants), len(mod.Functions), len(mod.Classes))
		if parseAST {
			if len(args) > 1 {
				fmt.Printf("# %s\n", path)
			}
			fmt.Print(renderCanonical(mod))
		}
	}
	return nil
}
