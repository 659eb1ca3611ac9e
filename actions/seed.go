package actions

import (
	"fmt"
	"time"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
)

type SeedDataConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	DryRun           bool
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"source connection name" mandatory:"yes"`
	SchemaName       string `errorTxt:"source schema name" mandatory:"yes"`
	Patients         int    `errorTxt:"number of patients" mandatory:"yes"`
	Doctors          int    `errorTxt:"number of doctors" mandatory:"yes"`
	Appointments     int    `errorTxt:"number of appointments" mandatory:"yes"`
	DataSeed         int64
	Opener           ConnectorOpener
}

// RunSeedData populates the source schema with a reproducible synthetic data
// set. The inserts run inside one transaction so the CDC connector sees a
// consistent initial snapshot. DryRun prints the statements instead.
func RunSeedData(cfg *SeedDataConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	plan := clinic.SeedPlan{
		Schema:       cfg.SchemaName,
		Patients:     cfg.Patients,
		Doctors:      cfg.Doctors,
		Appointments: cfg.Appointments,
		Seed:         cfg.DataSeed,
	}
	stmts, err := clinic.GenerateSeedSQL(plan)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		for _, stmt := range stmts {
			fmt.Println(stmt + ";")
		}
		return nil
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
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	start := time.Now()
	for idx, stmt := range stmts {
		log.Debug("seeding statement ", idx+1, " of ", len(stmts))
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed failed, transaction rolled back: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	volumes := clinic.ExpectedVolumes(plan)
	fmt.Printf("Seeded %v patients, %v doctors, %v appointments and %v visits in %v\n",
		volumes[clinic.TablePatients], volumes[clinic.TableDoctors],
		volumes[clinic.TableAppointments], volumes[clinic.TableVisits],
		time.Since(start).Round(time.Millisecond))
	return nil
}
