package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/config"
)

var configConnCmd = &cobra.Command{
	Use:   "connections",
	Short: "Configure connection details",
	Long: fmt.Sprintf(`Configure the source and target connections used by the setup, seed,
simulate, verify and report commands where:

- Connections are stored in file %q`, config.Connections.FullPath),
}

func init() {
	configCmd.AddCommand(configConnCmd)
	configCmd.Flags().SortFlags = false
	initConnAdd()
	initConnList()
	initConnRemove()
}
