package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/helper"
)

var targetSetupCfg = actions.TargetSetupConfig{}
var targetCleanupCfg = actions.TargetSetupConfig{}

var setupTargetCmd = &cobra.Command{
	Use:   "target",
	Short: "Provision or drop the warehouse objects on the Snowflake target",
	Long: `Preview and optionally execute DDL against the Snowflake target.

This creates the following objects, with default names shown in the flags below:

- A role, warehouse, database and schema owned by the demo
- An egress network rule allowing Snowflake to reach the source database
- A secret holding the source database credentials
- An external access integration tying the rule and secret together for
  the managed CDC connector
- Optionally an external STAGE object reading bulk snapshot files from AWS S3
`,
}

var setupTargetInstallCmd = &cobra.Command{
	Use:   "install <snowflake-connection-name>",
	Short: "Create the warehouse, database, schema and connector access objects",
	Args:  getConnectionNameArgsFunc(&targetSetupCfg.ConnectionName, "requires the Snowflake connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSetupCfg.Connections = getConnectionLoader()
		targetSetupCfg.StackDumpOnPanic = stackDumpOnPanic
		// Let AWS keys be picked up from env when the flags are unset.
		if targetSetupCfg.StageS3Key == "" {
			targetSetupCfg.StageS3Key, _ = helper.GetEnvVar("AWS_ACCESS_KEY_ID", false)
		}
		if targetSetupCfg.StageS3Secret == "" {
			targetSetupCfg.StageS3Secret, _ = helper.GetEnvVar("AWS_SECRET_ACCESS_KEY", false)
		}
		cmd.SilenceUsage = true
		return actions.RunTargetSetup(&targetSetupCfg)
	},
}

var setupTargetUninstallCmd = &cobra.Command{
	Use:   "uninstall <snowflake-connection-name>",
	Short: "Drop the warehouse objects and connector access objects",
	Args:  getConnectionNameArgsFunc(&targetCleanupCfg.ConnectionName, "requires the Snowflake connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetCleanupCfg.Connections = getConnectionLoader()
		targetCleanupCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunTargetCleanup(&targetCleanupCfg)
	},
}

func init() {
	setupCmd.AddCommand(setupTargetCmd)
	setupTargetCmd.AddCommand(setupTargetInstallCmd)
	setupTargetCmd.AddCommand(setupTargetUninstallCmd)
	for _, c := range []*cobra.Command{setupTargetInstallCmd, setupTargetUninstallCmd} {
		c.Flags().SortFlags = false
	}
	addTargetObjectFlags(setupTargetInstallCmd, &targetSetupCfg)
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.Target.SourceHost, "source-host", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.Target.SourcePort, "source-port", strconv.Itoa(constants.DefaultSourcePort), false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.Target.SourceUser, "source-user", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.Target.SourcePass, "source-password", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.StageName, "stage", constants.DefaultStageName, false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.StageS3Url, "s3-url", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.StageS3Key, "s3-key", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.StageS3Secret, "s3-secret", "", false, "")
	switches.addFlag(setupTargetInstallCmd, &targetSetupCfg.StageS3Region, "s3-region", "", false, "")
	addTargetObjectFlags(setupTargetUninstallCmd, &targetCleanupCfg)
	switches.addFlag(setupTargetUninstallCmd, &targetCleanupCfg.StageName, "stage", "", false,
		" (only dropped when supplied)")
}

// addTargetObjectFlags wires the Snowflake object name flags shared by the
// install and uninstall commands.
func addTargetObjectFlags(c *cobra.Command, cfg *actions.TargetSetupConfig) {
	switches.addFlag(c, &cfg.Target.Role, "target-role", constants.DefaultTargetRole, false, "")
	switches.addFlag(c, &cfg.Target.Warehouse, "target-warehouse", constants.DefaultTargetWarehouse, false, "")
	switches.addFlag(c, &cfg.Target.Database, "target-database", constants.DefaultTargetDatabase, false, "")
	switches.addFlag(c, &cfg.Target.Schema, "target-schema", constants.DefaultTargetSchema, false, "")
	switches.addFlag(c, &cfg.Target.NetworkRule, "network-rule", constants.DefaultNetworkRule, false, "")
	switches.addFlag(c, &cfg.Target.Secret, "secret-name", constants.DefaultSecretName, false, "")
	switches.addFlag(c, &cfg.Target.Integration, "integration-name", constants.DefaultIntegrationName, false, "")
	switches.addFlag(c, &cfg.ExecuteDDL, "execute-ddl", "false", false, "")
	switches.addFlag(c, &cfg.LogLevel, "log-level", "error", false, "")
}
