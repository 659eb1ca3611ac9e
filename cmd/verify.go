package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var verifySourceCfg = actions.VerifyConfig{}
var verifyTargetCfg = actions.VerifyConfig{}
var verifyLagCfg = actions.LagConfig{}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run data quality and replication checks",
	Long: `Run checks against the source, the target, or both ends at once:

- source: structural checks plus minimum row counts on the Postgres schema
- target: the same checks on the warehouse plus connector metadata assertions
- lag:    row count comparison per table between source and target

Results are printed as CSV with one line per check.`,
}

var verifySourceCmd = &cobra.Command{
	Use:   "source <postgres-connection-name>",
	Short: "Check the clinic source schema",
	Args:  getConnectionNameArgsFunc(&verifySourceCfg.ConnectionName, "requires the Postgres connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		verifySourceCfg.Connections = getConnectionLoader()
		verifySourceCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunVerifySource(&verifySourceCfg)
	},
}

var verifyTargetCmd = &cobra.Command{
	Use:   "target <snowflake-connection-name>",
	Short: "Check the replicated warehouse tables and connector metadata",
	Args:  getConnectionNameArgsFunc(&verifyTargetCfg.ConnectionName, "requires the Snowflake connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		verifyTargetCfg.Connections = getConnectionLoader()
		verifyTargetCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunVerifyTarget(&verifyTargetCfg)
	},
}

var verifyLagCmd = &cobra.Command{
	Use:   "lag <postgres-connection-name> <snowflake-connection-name>",
	Short: "Compare row counts per table between source and target",
	Args: getConnectionPairArgsFunc(&verifyLagCfg.SourceConnection, &verifyLagCfg.TargetConnection,
		"requires the Postgres and Snowflake connection names"),
	RunE: func(cmd *cobra.Command, args []string) error {
		verifyLagCfg.Connections = getConnectionLoader()
		verifyLagCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunVerifyLag(&verifyLagCfg)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(verifySourceCmd)
	verifyCmd.AddCommand(verifyTargetCmd)
	verifyCmd.AddCommand(verifyLagCmd)
	for _, c := range []*cobra.Command{verifySourceCmd, verifyTargetCmd, verifyLagCmd} {
		c.Flags().SortFlags = false
	}
	switches.addFlag(verifySourceCmd, &verifySourceCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	addVerifyVolumeFlags(verifySourceCmd, &verifySourceCfg)
	switches.addFlag(verifySourceCmd, &verifySourceCfg.LogLevel, "log-level", "error", false, "")
	switches.addFlag(verifyTargetCmd, &verifyTargetCfg.SchemaName, "target-prefix", defaultTargetPrefix(), false, "")
	addVerifyVolumeFlags(verifyTargetCmd, &verifyTargetCfg)
	switches.addFlag(verifyTargetCmd, &verifyTargetCfg.LogLevel, "log-level", "error", false, "")
	switches.addFlag(verifyLagCmd, &verifyLagCfg.SourceSchema, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(verifyLagCmd, &verifyLagCfg.TargetPrefix, "target-prefix", defaultTargetPrefix(), false, "")
	switches.addFlag(verifyLagCmd, &verifyLagCfg.ToleranceRows, "tolerance", "0", false, "")
	switches.addFlag(verifyLagCmd, &verifyLagCfg.LogLevel, "log-level", "error", false, "")
}

// addVerifyVolumeFlags wires the expected seed volumes. The defaults match the
// seed command so an out-of-the-box verify fails against an empty or partially
// replicated database. Setting all three to 0 skips the row count minimums and
// keeps the structural checks only.
func addVerifyVolumeFlags(c *cobra.Command, cfg *actions.VerifyConfig) {
	switches.addFlag(c, &cfg.Patients, "patients", strconv.Itoa(constants.DefaultSeedPatients), false, " (0 skips the row count minimum)")
	switches.addFlag(c, &cfg.Doctors, "doctors", strconv.Itoa(constants.DefaultSeedDoctors), false, " (0 skips the row count minimum)")
	switches.addFlag(c, &cfg.Appointments, "appointments", strconv.Itoa(constants.DefaultSeedAppointments), false, " (0 skips the row count minimum)")
	switches.addFlag(c, &cfg.DataSeed, "data-seed", "1", false, "")
}

func defaultTargetPrefix() string {
	return constants.DefaultTargetDatabase + "." + constants.DefaultTargetSchema
}
