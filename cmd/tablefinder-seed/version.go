package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tablefinder/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of tablefinder-seed",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tablefinder-seed %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
