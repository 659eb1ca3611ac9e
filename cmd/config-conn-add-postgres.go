package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/config"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/rdbms"
)

var configConnPostgresCfg = &actions.ConnectionConfig{}
var postgresConn = rdbms.PostgresConnectionDetails{}

var configConnAddPostgresCmd = &cobra.Command{
	Use:   "postgres",
	Short: "Add a Postgres connection",
	Long: fmt.Sprintf(`Add a Postgres connection to the config store %q
by providing a DSN of the form:

postgres://<user>:<password>@<host>:<port>/<database-name>?sslmode=<mode>`,
		config.Connections.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		configConnPostgresCfg.Type = constants.ConnectionTypePostgres
		configConnPostgresCfg.ConfigFile = getConnectionGetterSetter()
		configConnPostgresCfg.ConnDetails = postgresConn
		cmd.SilenceUsage = true
		return actions.RunConnectionAdd(configConnPostgresCfg)
	},
}

func init() {
	configConnAddCmd.AddCommand(configConnAddPostgresCmd)
	configConnAddPostgresCmd.Flags().SortFlags = false
	switches.addFlag(configConnAddPostgresCmd, &configConnPostgresCfg.LogicalName, "connection-name", "", true, "")
	switches.addFlag(configConnAddPostgresCmd, &configConnPostgresCfg.Force, "force-connection", "", false, "")
	switches.addFlag(configConnAddPostgresCmd, &postgresConn.Dsn, "dsn", "", false, "")
}
