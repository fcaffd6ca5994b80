package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check declaration files for errors",
	Long: `Check parses each file and reports the first diagnostic it finds.
It prints nothing on success, which makes it suitable as a CI gate or
editor hook.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := parser.ParseFile(path); err != nil {
			return fail(err)
		}
		logger.Info("%s: ok", path)
	}
	return nil
}
