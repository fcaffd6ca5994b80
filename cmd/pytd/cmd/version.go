package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mvcisback/pytypedecl/internal/cli"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	cli.PrintVersion("pytd", versionJSON)
	return nil
}
