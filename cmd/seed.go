package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var seedCfg = actions.SeedDataConfig{}

var seedCmd = &cobra.Command{
	Use:   "seed <postgres-connection-name>",
	Short: "Load the clinic schema with reproducible synthetic data",
	Long: `Generate patients, doctors, appointments and visits and insert them into
the clinic source schema in a single transaction, so the CDC connector sees one
consistent initial snapshot. The same data-seed always produces the same rows.
Use a dry-run to print the insert statements without executing them.`,
	Args: getConnectionNameArgsFunc(&seedCfg.ConnectionName, "requires the Postgres connection name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		seedCfg.Connections = getConnectionLoader()
		seedCfg.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunSeedData(&seedCfg)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().SortFlags = false
	switches.addFlag(seedCmd, &seedCfg.SchemaName, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(seedCmd, &seedCfg.Patients, "patients", strconv.Itoa(constants.DefaultSeedPatients), false, "")
	switches.addFlag(seedCmd, &seedCfg.Doctors, "doctors", strconv.Itoa(constants.DefaultSeedDoctors), false, "")
	switches.addFlag(seedCmd, &seedCfg.Appointments, "appointments", strconv.Itoa(constants.DefaultSeedAppointments), false, "")
	switches.addFlag(seedCmd, &seedCfg.DataSeed, "data-seed", "1", false, "")
	switches.addFlag(seedCmd, &seedCfg.DryRun, "dry-run", "false", false, "")
	switches.addFlag(seedCmd, &seedCfg.LogLevel, "log-level", "error", false, "")
}
