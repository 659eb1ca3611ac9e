package actions

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harborhealth/cdcdemo/helper"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

// sqlHandler streams query results as CSV.
type sqlHandler struct {
	printHeader bool
	writer      io.Writer
}

func newSqlHandler(printHeader bool, w io.Writer) *sqlHandler {
	if w == nil {
		w = os.Stdout
	}
	return &sqlHandler{printHeader: printHeader, writer: w}
}

func (s *sqlHandler) HandleHeader(i []interface{}) error {
	if s.printHeader {
		str := helper.InterfaceToString(i)
		w := csv.NewWriter(s.writer)
		err := w.Write(str)
		if err != nil {
			return fmt.Errorf("error outputting SQL header: %v", err)
		}
		w.Flush()
	}
	return nil
}

func (s *sqlHandler) HandleRow(i []interface{}) error {
	str := helper.InterfaceToString(i)
	w := csv.NewWriter(s.writer)
	err := w.Write(str)
	if err != nil {
		return fmt.Errorf("error outputting SQL row: %v", err)
	}
	w.Flush()
	return nil
}

func mustExecFn(log logger.Logger, printLogFn func(msg string), execFn func() error) {
	printLogFn("Executing SQL...")
	err := execFn()
	if err != nil {
		log.Panic(err)
	}
	printLogFn("SQL succeeded without error.")
}

func getPrintLogFunc(log logger.Logger, useStdOut bool) func(msg string) {
	return func(msg string) {
		if useStdOut {
			fmt.Println(msg)
		} else {
			log.Info(msg)
		}
	}
}

// validateConfig collects errorTxt values for unset mandatory fields and
// renders them as one actionable error.
func validateConfig(cfg interface{}) (err error) {
	errs := make([]string, 0)
	helper.GetStructErrorTxt4UnsetFields(cfg, &errs)
	if len(errs) > 0 {
		err = fmt.Errorf("please supply values for %v", strings.Join(errs, ", "))
	}
	return
}

// openConnection opens a database handle for loaded connection details. An
// opener is substituted by tests to inject mock connections.
func openConnection(log logger.Logger, conn shared.ConnectionDetails, opener ConnectorOpener) (shared.Connector, error) {
	if opener != nil {
		return opener(conn)
	}
	return rdbms.OpenDbConnection(log, conn)
}

// requireConnectionType loads a connection and checks it is of the wanted type.
func requireConnectionType(connections ConnectionLoader, name string, wantType string) (shared.ConnectionDetails, error) {
	conn, err := connections.LoadConnection(name)
	if err != nil {
		return shared.ConnectionDetails{}, err
	}
	if conn.Type != wantType {
		return shared.ConnectionDetails{}, fmt.Errorf("connection %q has type %v, expected %v", name, conn.Type, wantType)
	}
	return conn, nil
}

// queryValue runs a query expected to project one value and renders it as a string.
func queryValue(db shared.Connector, sqlText string) (string, error) {
	rows, err := db.Query(sqlText)
	if err != nil {
		return "", err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("query returned no rows: %v", sqlText)
	}
	var v interface{}
	if err := rows.Scan(&v); err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", v), rows.Err()
}

// queryCount runs a query expected to project one integer and returns it.
func queryCount(db shared.Connector, sqlText string) (int, error) {
	rows, err := db.Query(sqlText)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("query returned no rows: %v", sqlText)
	}
	var n int
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, rows.Err()
}
