package actions

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/helper"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type WebServerConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	Scheme           string `errorTxt:"scheme" mandatory:"no"`
	Addr             net.IP `errorTxt:"address" mandatory:"no"`
	Port             int    `errorTxt:"port" mandatory:"no"`
	Connections      ConnectionLoader
	SourceConnection string `errorTxt:"source connection name" mandatory:"yes"`
	TargetConnection string `errorTxt:"target connection name" mandatory:"yes"`
	SourceSchema     string `errorTxt:"source schema name" mandatory:"yes"`
	TargetPrefix     string `errorTxt:"target database.schema prefix" mandatory:"yes"`
	ToleranceRows    int
	StackDumpOnPanic bool
	SourceOpener     ConnectorOpener
	TargetOpener     ConnectorOpener
}

// RunWebServer serves pipeline health over HTTP so the demo can be watched
// from a browser or curl while the simulation runs.
func RunWebServer(web *WebServerConfig) error {
	if web == nil {
		return errors.New("nil pointer to web server config supplied")
	}
	chanStopServer := make(chan string, 1)
	// Register an exit handler so a logged Fatal still stops the server.
	log := logger.NewWebLogger("cdcdemo", web.LogLevel, web.StackDumpOnPanic, func() {
		select { // non-blocking, the exit handler must never stall logrus.
		case chanStopServer <- "stop":
		default:
		}
	})
	// Check if we have valid input params.
	err := helper.ValidateStructIsPopulated(web)
	if err != nil {
		return err
	}
	// Fail fast when either end is missing or of the wrong type.
	if err := web.loadConnections(); err != nil {
		return err
	}
	srv := runServer(log, web, chanStopServer)
	// Block & wait for completion.
	return waitForServer(log, srv, chanStopServer)
}

// loadConnections resolves both configured connections up front so a typo'd
// name or mismatched type is reported at startup rather than per request.
func (web *WebServerConfig) loadConnections() error {
	conns := shared.DBConnections{
		"source": {LogicalName: web.SourceConnection},
		"target": {LogicalName: web.TargetConnection},
	}
	for _, end := range []string{"source", "target"} {
		if err := conns.LoadConnection(web.Connections, end); err != nil {
			return errors.Wrapf(err, "cannot load %v connection", end)
		}
	}
	if conns["source"].Type != constants.ConnectionTypePostgres {
		return fmt.Errorf("source connection %q has type %v, expected %v", web.SourceConnection, conns["source"].Type, constants.ConnectionTypePostgres)
	}
	if conns["target"].Type != constants.ConnectionTypeSnowflake {
		return fmt.Errorf("target connection %q has type %v, expected %v", web.TargetConnection, conns["target"].Type, constants.ConnectionTypeSnowflake)
	}
	return nil
}

// runServer starts a web server listening until a message arrives on chanStopServer.
func runServer(log logger.Logger, web *WebServerConfig, chanStopServer chan string) *http.Server {
	r := NewRouter(log, web, chanStopServer)
	// Configure HTTP server.
	srv := &http.Server{ // Good practice to set timeouts to avoid Slowloris attacks.
		Addr:         fmt.Sprintf("%v:%v", web.Addr, web.Port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r, // supply our instance of gorilla/mux.
	}
	// Run HTTP server non-blocking.
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				log.Info(err)
			} else {
				log.Panic(err)
			}
		}
	}()
	log.Info(fmt.Sprintf("Listening on %v://%v:%v", strings.ToLower(web.Scheme), web.Addr, web.Port))
	return srv
}

// NewRouter wires the demo's HTTP routes.
func NewRouter(log logger.Logger, web *WebServerConfig, chanStopServer chan string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stop", GetHandlerStopServer(log, chanStopServer))
	r.Path("/health").HandlerFunc(GetHandlerHealth(log))
	r.Path("/checks/{end}").HandlerFunc(GetHandlerChecks(log, web))
	r.Path("/lag").HandlerFunc(GetHandlerLag(log, web))
	r.Path("/reports").HandlerFunc(GetHandlerReportList(log, web))
	return r
}

func waitForServer(log logger.Logger, srv *http.Server, chanStopServer chan string) error {
	// Block & wait for shutdown signals.
	// Accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+\) will not be caught.
	chanOS := make(chan os.Signal, 1)
	signal.Notify(chanOS, os.Interrupt) // request signals be sent to chanOS.
	select {
	case <-chanStopServer:
	case <-chanOS:
	}
	fmt.Println() // print new line char for clean looking CLI.
	log.Info("Shutting down web server...")
	wait := time.Second * 15
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return srv.Shutdown(ctx) // Doesn't block if no connections, but will otherwise wait until the timeout deadline.
}

// runEndChecks opens the requested end and executes its check set.
func (web *WebServerConfig) runEndChecks(log logger.Logger, target bool) ([]CheckResult, error) {
	var conn shared.ConnectionDetails
	var err error
	var checks []clinic.Check
	var opener ConnectorOpener
	if target {
		conn, err = requireConnectionType(web.Connections, web.TargetConnection, constants.ConnectionTypeSnowflake)
		checks = clinic.TargetChecks(web.TargetPrefix, map[string]int{})
		opener = web.TargetOpener
	} else {
		conn, err = requireConnectionType(web.Connections, web.SourceConnection, constants.ConnectionTypePostgres)
		checks = clinic.SourceChecks(web.SourceSchema, map[string]int{})
		opener = web.SourceOpener
	}
	if err != nil {
		return nil, err
	}
	db, err := openConnection(log, conn, opener)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return executeChecks(log, db, checks)
}

// tableLag compares live row counts per table between the two ends.
func (web *WebServerConfig) tableLag(log logger.Logger) ([]LagItem, error) {
	srcConn, err := requireConnectionType(web.Connections, web.SourceConnection, constants.ConnectionTypePostgres)
	if err != nil {
		return nil, err
	}
	tgtConn, err := requireConnectionType(web.Connections, web.TargetConnection, constants.ConnectionTypeSnowflake)
	if err != nil {
		return nil, err
	}
	src, err := openConnection(log, srcConn, web.SourceOpener)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	tgt, err := openConnection(log, tgtConn, web.TargetOpener)
	if err != nil {
		return nil, err
	}
	defer tgt.Close()
	items := make([]LagItem, 0, len(clinic.TableNames()))
	for _, table := range clinic.TableNames() {
		srcCount, err := queryCount(src, clinic.RowCountSQL(web.SourceSchema, table, false))
		if err != nil {
			return nil, fmt.Errorf("source count for %v failed: %v", table, err)
		}
		tgtCount, err := queryCount(tgt, clinic.RowCountSQL(web.TargetPrefix, table, true))
		if err != nil {
			return nil, fmt.Errorf("target count for %v failed: %v", table, err)
		}
		diff := srcCount - tgtCount
		if diff < 0 {
			diff = -diff
		}
		items = append(items, LagItem{
			Table:      table,
			SourceRows: srcCount,
			TargetRows: tgtCount,
			Difference: diff,
			InSync:     diff <= web.ToleranceRows,
		})
	}
	return items, nil
}
