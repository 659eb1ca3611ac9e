package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pipeline health over HTTP while the simulation runs",
	Long: `Start a web service exposing the replication health of the demo:

  GET /health        liveness probe
  GET /checks/source data quality checks against the Postgres source
  GET /checks/target checks plus connector metadata against the warehouse
  GET /lag           row count comparison per table between the two ends
  GET /reports       the analytics report catalogue
  GET /stop          shut the server down`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serveConfig.Connections = getConnectionLoader()
		serveConfig.StackDumpOnPanic = stackDumpOnPanic
		cmd.SilenceUsage = true
		return actions.RunWebServer(&serveConfig)
	},
}

var serveConfig = actions.WebServerConfig{
	LogLevel: "info",
	Scheme:   "http",
	Addr:     net.IP{0, 0, 0, 0},
	Port:     8080,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().SortFlags = false
	serveCmd.Flags().IPVarP(&serveConfig.Addr, "address", "a", net.IP{0, 0, 0, 0}, "Address to listen on")
	switches.addFlag(serveCmd, &serveConfig.Port, "port", "8080", false, "")
	switches.addFlag(serveCmd, &serveConfig.SourceConnection, "source-connection", "", true, "")
	switches.addFlag(serveCmd, &serveConfig.TargetConnection, "target-connection", "", true, "")
	switches.addFlag(serveCmd, &serveConfig.SourceSchema, "schema", constants.DefaultSourceSchema, false, "")
	switches.addFlag(serveCmd, &serveConfig.TargetPrefix, "target-prefix", defaultTargetPrefix(), false, "")
	switches.addFlag(serveCmd, &serveConfig.ToleranceRows, "tolerance", "0", false, "")
	switches.addFlag(serveCmd, &serveConfig.LogLevel, "log-level", "info", false, "")
}
