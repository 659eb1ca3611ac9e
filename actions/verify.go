package actions

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type VerifyConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"connection name" mandatory:"yes"`
	SchemaName       string `errorTxt:"schema name" mandatory:"yes"`
	// Seed shape used to derive minimum row counts. Zero values skip the
	// volume minimums and keep the structural checks only.
	Patients     int
	Doctors      int
	Appointments int
	DataSeed     int64
	Output       io.Writer
	Opener       ConnectorOpener
}

type LagConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	Connections      ConnectionLoader
	SourceConnection string `errorTxt:"source connection name" mandatory:"yes"`
	TargetConnection string `errorTxt:"target connection name" mandatory:"yes"`
	SourceSchema     string `errorTxt:"source schema name" mandatory:"yes"`
	TargetPrefix     string `errorTxt:"target database.schema prefix" mandatory:"yes"`
	ToleranceRows    int
	Output           io.Writer
	SourceOpener     ConnectorOpener
	TargetOpener     ConnectorOpener
}

// CheckResult is one executed check with its outcome.
type CheckResult struct {
	Name   string
	Value  int
	Passed bool
}

func (cfg *VerifyConfig) expectedVolumes() map[string]int {
	if cfg.Patients == 0 && cfg.Doctors == 0 && cfg.Appointments == 0 {
		return map[string]int{}
	}
	return clinic.ExpectedVolumes(clinic.SeedPlan{
		Schema:       cfg.SchemaName,
		Patients:     cfg.Patients,
		Doctors:      cfg.Doctors,
		Appointments: cfg.Appointments,
		Seed:         cfg.DataSeed,
	})
}

// RunVerifySource executes the data quality checks against the clinic source.
func RunVerifySource(cfg *VerifyConfig) error {
	checks := clinic.SourceChecks(cfg.SchemaName, cfg.expectedVolumes())
	return runChecks(cfg, constants.ConnectionTypePostgres, checks)
}

// RunVerifyTarget executes the checks against the warehouse, including the
// connector metadata assertions.
func RunVerifyTarget(cfg *VerifyConfig) error {
	checks := clinic.TargetChecks(cfg.SchemaName, cfg.expectedVolumes())
	return runChecks(cfg, constants.ConnectionTypeSnowflake, checks)
}

func runChecks(cfg *VerifyConfig, wantType string, checks []clinic.Check) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, wantType)
	if err != nil {
		return err
	}
	db, err := openConnection(log, conn, cfg.Opener)
	if err != nil {
		return err
	}
	defer db.Close()
	results, err := executeChecks(log, db, checks)
	if err != nil {
		return err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	failed := writeCheckResults(out, results)
	if failed > 0 {
		fmt.Fprintf(out, "%v %v of %v checks failed\n", constants.EmojiBang, failed, len(results))
		return fmt.Errorf("%v of %v checks failed", failed, len(results))
	}
	fmt.Fprintf(out, "All %v checks passed\n", len(results))
	return nil
}

// executeChecks runs each check query and judges the single integer result.
func executeChecks(log logger.Logger, db shared.Connector, checks []clinic.Check) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		log.Debug("running check ", c.Name)
		n, err := queryCount(db, c.SQL)
		if err != nil {
			return nil, fmt.Errorf("check %v failed to run: %v", c.Name, err)
		}
		results = append(results, CheckResult{Name: c.Name, Value: n, Passed: c.Evaluate(n)})
	}
	return results, nil
}

// writeCheckResults renders results as CSV and returns the failure count.
func writeCheckResults(out io.Writer, results []CheckResult) int {
	w := csv.NewWriter(out)
	_ = w.Write([]string{"check", "value", "status"})
	failed := 0
	for _, r := range results {
		status := "pass"
		if !r.Passed {
			status = "FAIL"
			failed++
		}
		_ = w.Write([]string{r.Name, strconv.Itoa(r.Value), status})
	}
	w.Flush()
	return failed
}

// RunVerifyLag compares live row counts per table between the source and the
// warehouse. A difference above the tolerance means the connector has not
// caught up, or has missed changes.
func RunVerifyLag(cfg *LagConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	srcConn, err := requireConnectionType(cfg.Connections, cfg.SourceConnection, constants.ConnectionTypePostgres)
	if err != nil {
		return err
	}
	tgtConn, err := requireConnectionType(cfg.Connections, cfg.TargetConnection, constants.ConnectionTypeSnowflake)
	if err != nil {
		return err
	}
	src, err := openConnection(log, srcConn, cfg.SourceOpener)
	if err != nil {
		return err
	}
	defer src.Close()
	tgt, err := openConnection(log, tgtConn, cfg.TargetOpener)
	if err != nil {
		return err
	}
	defer tgt.Close()
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	w := csv.NewWriter(out)
	_ = w.Write([]string{"table", "source_rows", "target_rows", "difference", "status"})
	lagging := 0
	for _, table := range clinic.TableNames() {
		srcCount, err := queryCount(src, clinic.RowCountSQL(cfg.SourceSchema, table, false))
		if err != nil {
			return fmt.Errorf("source count for %v failed: %v", table, err)
		}
		tgtCount, err := queryCount(tgt, clinic.RowCountSQL(cfg.TargetPrefix, table, true))
		if err != nil {
			return fmt.Errorf("target count for %v failed: %v", table, err)
		}
		diff := srcCount - tgtCount
		if diff < 0 {
			diff = -diff
		}
		status := "in sync"
		if diff > cfg.ToleranceRows {
			status = "LAGGING"
			lagging++
		}
		_ = w.Write([]string{table, strconv.Itoa(srcCount), strconv.Itoa(tgtCount), strconv.Itoa(diff), status})
	}
	w.Flush()
	if lagging > 0 {
		fmt.Fprintf(out, "%v %v of %v tables exceed the %v row tolerance\n", constants.EmojiBang, lagging, len(clinic.TableNames()), cfg.ToleranceRows)
		return fmt.Errorf("%v of %v tables exceed the %v row tolerance", lagging, len(clinic.TableNames()), cfg.ToleranceRows)
	}
	fmt.Fprintln(out, "All tables within tolerance")
	return nil
}
