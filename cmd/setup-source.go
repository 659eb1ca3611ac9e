package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var sourceSetupCfg = actions.SourceSetupConfig{}
var sourceCleanupCfg = actions.SourceSetupConfig{}

var setupSourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Provision or drop the clinic schema on the Postgres source",
	Long: `Preview and optionally execute DDL against the Postgres source.

This creates the following objects, with default names shown in the flags below:

- The clinic schema with the patients, doctors, appointments and visits tables
- An updated_at trigger on each table
- REPLICA IDENTITY FULL on each table so updates and deletes carry full rows
- A logical replication publication for the CDC connector to read from
`,
}

var setupSourceInstallCmd = &cobra.Command{
	Use:   "install <postgres-connection-name>",
	Short: "Create the clinic schema, trigger and publication",
	Args:  getConnectionNameArgsFunc(&sourceSetupCfg.ConnectionName, "requires the Postgres connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceSetupCfg.Connections = getConnectionLoader()
		sourceSetupCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunSourceSetup(&sourceSetupCfg)
	},
}

var setupSourceUninstallCmd = &cobra.Command{
	Use:   "uninstall <postgres-connection-name>",
	Short: "Drop the clinic schema and publication",
	Args:  getConnectionNameArgsFunc(&sourceCleanupCfg.ConnectionName, "requires the Postgres connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceCleanupCfg.Connections = getConnectionLoader()
		sourceCleanupCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunSourceCleanup(&sourceCleanupCfg)
	},
}

func init() {
	setupCmd.AddCommand(setupSourceCmd)
	setupSourceCmd.AddCommand(setupSourceInstallCmd)
	setupSourceCmd.AddCommand(setupSourceUninstallCmd)
	for _, c := range []*cobra.Command{setupSourceInstallCmd, setupSourceUninstallCmd} {
		c.Flags().SortFlags = false
	}
	switches.addFlag(setupSourceInstallCmd, &sourceSetupCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(setupSourceInstallCmd, &sourceSetupCfg.PublicationName, "publication", constants.DefaultPublicationName, false, "")
	switches.addFlag(setupSourceInstallCmd, &sourceSetupCfg.ExecuteDDL, "execute-ddl", "false", false, "")
	switches.addFlag(setupSourceInstallCmd, &sourceSetupCfg.LogLevel, "log-level", "error", false, "")
	switches.addFlag(setupSourceUninstallCmd, &sourceCleanupCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(setupSourceUninstallCmd, &sourceCleanupCfg.PublicationName, "publication", constants.DefaultPublicationName, false, "")
	switches.addFlag(setupSourceUninstallCmd, &sourceCleanupCfg.ExecuteDDL, "execute-ddl", "false", false, "")
	switches.addFlag(setupSourceUninstallCmd, &sourceCleanupCfg.LogLevel, "log-level", "error", false, "")
}
