package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var simulateCfg = actions.SimulateConfig{}

var simulateCmd = &cobra.Command{
	Use:   "simulate <postgres-connection-name>",
	Short: "Drive the appointment lifecycle to generate a stream of changes",
	Long: `Run rounds of changes against the clinic source schema, where each round:

- inserts new scheduled appointments
- advances existing appointments through their lifecycle
  (scheduled > confirmed > checked_in > in_progress > completed,
  with a share of cancellations and no-shows)
- records a visit for each fresh completion

Each round commits in its own transaction, giving the CDC connector a steady
stream of inserts and updates to replicate. Interrupt with ctrl-c to stop
after the in-flight round.`,
	Args: getConnectionNameArgsFunc(&simulateCfg.ConnectionName, "requires the Postgres connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		simulateCfg.Connections = getConnectionLoader()
		simulateCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunSimulation(&simulateCfg)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().SortFlags = false
	switches.addFlag(simulateCmd, &simulateCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(simulateCmd, &simulateCfg.Rounds, "rounds", "10", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.IntervalSeconds, "interval", "5", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.BatchSize, "batch-size", "5", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.NewPerRound, "new-per-round", "3", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.DataSeed, "data-seed", "1", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(simulateCmd, &simulateCfg.LogLevel, "log-level", "error", false, "")
}
