package actions

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	isatty "github.com/mattn/go-isatty"
	"github.com/rs/xid"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type SimulateConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"source connection name" mandatory:"yes"`
	SchemaName       string `errorTxt:"source schema name" mandatory:"yes"`
	Rounds           int    `errorTxt:"number of rounds" mandatory:"yes"`
	IntervalSeconds  int
	BatchSize        int `errorTxt:"batch size" mandatory:"yes"`
	NewPerRound      int
	DataSeed         int64
	DryRun           bool
	Opener           ConnectorOpener
}

// roundResult tallies what one round changed.
type roundResult struct {
	transitions  int64
	appointments int64
	visits       int64
}

// RunSimulation drives the appointment lifecycle on the source so the CDC
// connector has a steady stream of inserts and updates to replicate. Each
// round inserts new scheduled appointments, advances existing ones through
// their lifecycle and records visits for fresh completions. Interrupting with
// ctrl-c finishes the in-flight round before exiting.
func RunSimulation(cfg *SimulateConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.NewPerRound < 0 {
		return fmt.Errorf("new appointments per round cannot be negative")
	}
	rnd := rand.New(rand.NewSource(cfg.DataSeed))
	if cfg.DryRun {
		return printSimulationPlan(cfg, rnd)
	}
	conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, constants.ConnectionTypePostgres)
	if err != nil {
		return err
	}
	db, err := openConnection(log, conn, cfg.Opener)
	if err != nil {
		return err
	}
	defer db.Close()
	runId := xid.New().String()
	interactive := isatty.IsTerminal(os.Stdout.Fd())
	log.Info("simulation run ", runId, " starting: rounds=", cfg.Rounds, " batch=", cfg.BatchSize, " interval=", cfg.IntervalSeconds, "s")
	// Handle interrupts between rounds.
	chanQuit := make(chan os.Signal, 2)
	signal.Notify(chanQuit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(chanQuit)
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	for round := 1; round <= cfg.Rounds; round++ {
		res, err := runRound(db, cfg.SchemaName, cfg.BatchSize, cfg.NewPerRound, rnd)
		if err != nil {
			return fmt.Errorf("simulation run %v failed in round %v: %v", runId, round, err)
		}
		if interactive {
			fmt.Printf("\rround %v/%v: %v transitions, %v new appointments, %v visits",
				round, cfg.Rounds, res.transitions, res.appointments, res.visits)
			if round == cfg.Rounds {
				fmt.Println()
			}
		} else {
			log.Info("round ", round, "/", cfg.Rounds, ": transitions=", res.transitions,
				" newAppointments=", res.appointments, " visits=", res.visits)
		}
		if round == cfg.Rounds {
			break
		}
		select {
		case <-chanQuit:
			if interactive {
				fmt.Println()
			}
			fmt.Printf("User abort. Simulation run %v stopped after round %v\n", runId, round)
			return nil
		case <-time.After(interval):
		}
	}
	fmt.Printf("Simulation run %v complete after %v rounds\n", runId, cfg.Rounds)
	return nil
}

// runRound executes one simulation round in a single transaction.
func runRound(db shared.Connector, schema string, batch int, newPerRound int, rnd *rand.Rand) (roundResult, error) {
	res := roundResult{}
	tx, err := db.Begin()
	if err != nil {
		return res, err
	}
	for _, stmt := range clinic.NewAppointmentSQL(schema, newPerRound, rnd) {
		r, err := tx.Exec(stmt)
		if err != nil {
			_ = tx.Rollback()
			return res, err
		}
		n, _ := r.RowsAffected()
		res.appointments += n
	}
	for _, step := range clinic.RoundSteps(batch) {
		stmt, err := step.UpdateSQL(schema)
		if err != nil {
			_ = tx.Rollback()
			return res, err
		}
		r, err := tx.Exec(stmt)
		if err != nil {
			_ = tx.Rollback()
			return res, err
		}
		n, _ := r.RowsAffected()
		res.transitions += n
	}
	r, err := tx.Exec(clinic.VisitInsertSQL(schema, rnd))
	if err != nil {
		_ = tx.Rollback()
		return res, err
	}
	n, _ := r.RowsAffected()
	res.visits = n
	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

// printSimulationPlan dumps the SQL one round would execute.
func printSimulationPlan(cfg *SimulateConfig, rnd *rand.Rand) error {
	fmt.Printf("-- One simulation round against schema %v...\n", cfg.SchemaName)
	for _, stmt := range clinic.NewAppointmentSQL(cfg.SchemaName, cfg.NewPerRound, rnd) {
		fmt.Println(stmt + ";")
	}
	for _, step := range clinic.RoundSteps(cfg.BatchSize) {
		stmt, err := step.UpdateSQL(cfg.SchemaName)
		if err != nil {
			return err
		}
		fmt.Println(stmt + ";")
	}
	fmt.Println(clinic.VisitInsertSQL(cfg.SchemaName, rnd) + ";")
	return nil
}
