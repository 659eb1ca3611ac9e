package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var reportCfg = actions.ReportConfig{}

var reportCmd = &cobra.Command{
	Use:   "report <connection-name>",
	Short: "Run the clinic analytics reports",
	Long: `Run analytics queries against a configured connection and stream the
results as CSV. The connection may be the Postgres source or the Snowflake
target; the SQL dialect is adjusted per connection type. Supply --report to
run one report, omit it to run them all, or use --list to see the catalogue.
When running against the target, set --schema to the <database>.<schema>
prefix of the replicated tables.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if reportCfg.ListOnly && len(args) == 0 { // listing the catalogue needs no connection...
			return nil
		}
		return getConnectionNameArgsFunc(&reportCfg.ConnectionName, "requires a connection name")(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		reportCfg.Connections = getConnectionLoader()
		reportCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunReport(&reportCfg)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().SortFlags = false
	switches.addFlag(reportCmd, &reportCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(reportCmd, &reportCfg.ReportName, "report", "", false, "")
	switches.addFlag(reportCmd, &reportCfg.ListOnly, "list", "false", false, "")
	switches.addFlag(reportCmd, &reportCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(reportCmd, &reportCfg.LogLevel, "log-level", "error", false, "")
}
