package actions

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/context"

	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms"
)

type QueryConfig struct {
	Connections      ConnectionHandler
	SourceString     ConnectionObject
	Query            string
	PrintHeader      bool
	DryRun           bool
	LogLevel         string
	StackDumpOnPanic bool
	Opener           ConnectorOpener
}

func RunQuery(cfg *QueryConfig) error {
	var err error
	if cfg.DryRun {
		fmt.Println(cfg.Query)
		return nil
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	name := cfg.SourceString.GetConnectionName()
	// Check the dialect is one we can drive before fetching credentials.
	connType, err := cfg.Connections.GetConnectionType(name)
	if err != nil {
		return err
	}
	switch connType {
	case constants.ConnectionTypePostgres, constants.ConnectionTypeSnowflake:
	default:
		return fmt.Errorf("connection %q has unsupported type %q for ad-hoc queries", name, connType)
	}
	// Connect to database.
	conn, err := cfg.Connections.GetConnectionDetails(name)
	if err != nil {
		return err
	}
	db, err := openConnection(log, *conn, cfg.Opener)
	if err != nil {
		return err
	}
	defer db.Close()
	// Create context.
	ctx, cancelFn := context.WithCancel(context.Background())
	h := newSqlHandler(cfg.PrintHeader, nil)
	// Handle interrupts.
	chanQuit := make(chan os.Signal, 2)
	chanSql := make(chan struct{}, 1)
	signal.Notify(chanQuit, os.Interrupt, syscall.SIGTERM)
	// Start the SQL.
	go func() {
		err = rdbms.SqlQuery(ctx, log, db, cfg.Query, h)
		chanSql <- struct{}{}
	}()
	// Wait for SQL or interrupt.
	select {
	case <-chanQuit: // if we were interrupted...
		fmt.Println("\nUser abort. Stopping SQL execution...")
		cancelFn() // cancel the SQL.
		select {
		case <-time.After(5 * time.Second): // timeout.
			fmt.Println("Timeout waiting for SQL to end - aborted")
		case <-chanSql: // sql ended.
		}
		return nil
	case <-chanSql: // SQL ended.
	}
	cancelFn()
	return err
}
