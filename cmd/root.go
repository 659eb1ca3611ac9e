package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2026-01-02T03:04+0500"
	stackDumpOnPanic bool
)

var rootCmd = &cobra.Command{
	Use: "cdcdemo",
	Long: `
cdcdemo provisions and exercises an end-to-end change data capture demo:
a Postgres clinic database streamed into Snowflake by a managed CDC connector.

Set up both ends with pre-canned DDL, seed reproducible sample data, run a
scripted appointment lifecycle to generate change traffic, then verify that
the warehouse keeps up and query the replicated data. Start an HTTP server
to watch pipeline health via a RESTful API. Happy replicating! 😄`,
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Execute() prints the error.
		os.Exit(1)
	}
}
