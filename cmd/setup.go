package cmd

import (
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision or drop the demo objects on the source and target databases",
	Long:  `Preview, install or uninstall DDL against the Postgres source and the Snowflake target.`,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
