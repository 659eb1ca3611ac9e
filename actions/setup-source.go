package actions

import (
	"fmt"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type SourceSetupConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	ExecuteDDL       bool
	SchemaName       string `errorTxt:"source schema name" mandatory:"yes"`
	PublicationName  string `errorTxt:"publication name" mandatory:"yes"`
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"source connection name" mandatory:"yes"`
	PgConnDetails    *shared.DsnConnectionDetails
}

// RunSourceSetup provisions the clinic schema on the source database along
// with the trigger, replica identity and publication the CDC connector reads
// from. Without ExecuteDDL the statements are printed for review.
func RunSourceSetup(cfg *SourceSetupConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.ExecuteDDL { // if we will execute then we need a real connection...
		conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, constants.ConnectionTypePostgres)
		if err != nil {
			return err
		}
		cfg.PgConnDetails = shared.GetDsnConnectionDetails(&conn)
	}
	printLogFn := getPrintLogFunc(log, !cfg.ExecuteDDL)
	ddl := clinic.SourceDDL(cfg.SchemaName, cfg.PublicationName, !cfg.ExecuteDDL) // if we want to execute then disable terminator in SQL strings.
	printLogFn(`-- Postgres SQL...`)
	for _, stmt := range ddl {
		printLogFn(stmt)
		if cfg.ExecuteDDL {
			fn := func() error {
				return rdbms.PostgresExecWithConnDetails(log, cfg.PgConnDetails, stmt)
			}
			mustExecFn(log, printLogFn, fn)
		}
	}
	if cfg.ExecuteDDL {
		fmt.Printf("Source schema %q ready with publication %q\n", cfg.SchemaName, cfg.PublicationName)
	}
	return nil
}

// RunSourceCleanup drops the clinic schema objects and the publication.
func RunSourceCleanup(cfg *SourceSetupConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.ExecuteDDL {
		conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, constants.ConnectionTypePostgres)
		if err != nil {
			return err
		}
		cfg.PgConnDetails = shared.GetDsnConnectionDetails(&conn)
	}
	printLogFn := getPrintLogFunc(log, !cfg.ExecuteDDL)
	ddl := clinic.SourceCleanupDDL(cfg.SchemaName, cfg.PublicationName, !cfg.ExecuteDDL)
	printLogFn(`-- Postgres SQL...`)
	for _, stmt := range ddl {
		printLogFn(stmt)
		if cfg.ExecuteDDL {
			fn := func() error {
				return rdbms.PostgresExecWithConnDetails(log, cfg.PgConnDetails, stmt)
			}
			mustExecFn(log, printLogFn, fn)
		}
	}
	return nil
}
