package actions

import (
	"bytes"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/constants"
)

func TestRunReportSingle(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	mock.ExpectQuery("select now").
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow("2026-08-26 10:15:00"))
	mock.ExpectQuery("select status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "appointments"}).
			AddRow("completed", 104).
			AddRow("scheduled", 20))
	out := &bytes.Buffer{}
	err := RunReport(&ReportConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		ReportName:     "status_breakdown",
		Output:         out,
		Opener:         opener,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, out.String(), "-- generated at 2026-08-26 10:15:00 (database time)")
	assert.Contains(t, out.String(), "-- status_breakdown:")
	assert.Contains(t, out.String(), "completed,104")
}

func TestRunReportUnknownName(t *testing.T) {
	err := RunReport(&ReportConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		ReportName:     "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report")
}

func TestRunReportListOnly(t *testing.T) {
	out := &bytes.Buffer{}
	err := RunReport(&ReportConfig{
		LogLevel: "error",
		ListOnly: true,
		Output:   out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "status_breakdown:")
	assert.Contains(t, out.String(), "insurance_mix:")
}

func TestRunReportDryRun(t *testing.T) {
	out := &bytes.Buffer{}
	err := RunReport(&ReportConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		DryRun:         true,
		Output:         out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "-- doctor_utilization")
	assert.Contains(t, out.String(), "from clinic.visits")
}
