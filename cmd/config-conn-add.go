package cmd

import (
	"github.com/spf13/cobra"
)

var configConnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a connection",
	Long:  `Add a logical connection (Postgres source or Snowflake target) for use with the other commands.`,
}

func initConnAdd() {
	configConnCmd.AddCommand(configConnAddCmd)
}
