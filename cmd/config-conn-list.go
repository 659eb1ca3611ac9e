package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/config"
)

var connListCfg = actions.ConnectionConfig{}

var configConnListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all connections",
	Long: fmt.Sprintf(`List connections stored in config store %q
by printing them all to STDOUT`,
		config.Connections.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		connListCfg.ConfigFile = getConnectionGetterSetter()
		cmd.SilenceUsage = true
		return actions.RunConnectionList(&connListCfg)
	},
}

func initConnList() {
	configConnCmd.AddCommand(configConnListCmd)
}
