package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopcr/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gopcr",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gopcr v%s\n", version.Version)
		fmt.Fprintf(out, "Build: %s (%s)\n", version.BuildTime, version.GitCommit)
		fmt.Fprintln(out, "Monte Carlo corrosion reliability of hollow steel pipes")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
