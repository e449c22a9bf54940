// Package main is the entry point for the tablefinder-seed CLI, which bulk-loads
// the restaurant dataset into the configured store.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tablefinder/internal/config"
)

// rootCmd is the base command for the tablefinder-seed CLI.
var rootCmd = &cobra.Command{
	Use:   "tablefinder-seed",
	Short: "Load restaurant data into the tablefinder store",
	Long: `tablefinder-seed reads a Zomato-format CSV export and writes every valid
row into the store selected by the tablefinder config (valkey, redis or
postgres). The server treats the dataset as read-only; this tool is the only
writer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", config.GetEnv(), "config environment (reads config/<env>.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
