package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/context"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms"
)

type ReportConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"connection name" mandatory:"yes"`
	SchemaName       string `errorTxt:"schema name" mandatory:"yes"`
	ReportName       string
	ListOnly         bool
	DryRun           bool
	Output           io.Writer
	Opener           ConnectorOpener
}

// RunReport executes one named analytics query, or all of them when no name is
// given, and streams the results as CSV. ListOnly prints the catalogue.
func RunReport(cfg *ReportConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.ListOnly {
		for _, r := range clinic.Reports(cfg.SchemaName, "") {
			fmt.Fprintf(out, "%v: %v\n", r.Name, r.Description)
		}
		return nil
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	conn, err := cfg.Connections.LoadConnection(cfg.ConnectionName)
	if err != nil {
		return err
	}
	reports := clinic.Reports(cfg.SchemaName, conn.Type)
	if cfg.ReportName != "" {
		r, ok := clinic.FindReport(cfg.SchemaName, conn.Type, cfg.ReportName)
		if !ok {
			return fmt.Errorf("unknown report %q, expected one of: %v", cfg.ReportName, strings.Join(clinic.ReportNames(), ", "))
		}
		reports = []clinic.Report{r}
	}
	if cfg.DryRun {
		for _, r := range reports {
			fmt.Fprintf(out, "-- %v\n%v;\n", r.Name, r.SQL)
		}
		return nil
	}
	db, err := openConnection(log, conn, cfg.Opener)
	if err != nil {
		return err
	}
	defer db.Close()
	// Stamp the run with the database server's clock so report output can be
	// lined up against the connector's metadata timestamps.
	generatedAt, err := queryValue(db, "select "+conn.MustGetSysDateSql())
	if err != nil {
		return fmt.Errorf("could not read the database time: %v", err)
	}
	fmt.Fprintf(out, "-- generated at %v (database time)\n", generatedAt)
	ctx := context.Background()
	for _, r := range reports {
		fmt.Fprintf(out, "-- %v: %v\n", r.Name, r.Description)
		h := newSqlHandler(true, out)
		if err := rdbms.SqlQuery(ctx, log, db, r.SQL, h); err != nil {
			return fmt.Errorf("report %v failed: %v", r.Name, err)
		}
	}
	return nil
}
