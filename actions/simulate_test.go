package actions

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
)

func TestRunSimulationOneRound(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	mock.ExpectBegin()
	mock.ExpectExec("insert into clinic.appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("insert into clinic.appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	for range clinic.RoundSteps(10) {
		mock.ExpectExec("update clinic.appointments").WillReturnResult(sqlmock.NewResult(0, 4))
	}
	mock.ExpectExec("insert into clinic.visits").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	err := RunSimulation(&SimulateConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Rounds:         1,
		BatchSize:      10,
		NewPerRound:    2,
		DataSeed:       42,
		Opener:         opener,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSimulationRollsBackFailedRound(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	mock.ExpectBegin()
	mock.ExpectExec("update clinic.appointments").WillReturnError(assert.AnError)
	mock.ExpectRollback()
	err := RunSimulation(&SimulateConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Rounds:         1,
		BatchSize:      5,
		Opener:         opener,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSimulationDryRun(t *testing.T) {
	err := RunSimulation(&SimulateConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Rounds:         3,
		BatchSize:      10,
		NewPerRound:    1,
		DryRun:         true,
	})
	require.NoError(t, err)
}

func TestRunSimulationValidatesConfig(t *testing.T) {
	err := RunSimulation(&SimulateConfig{
		LogLevel:    "error",
		Connections: testLoader(),
		SchemaName:  "clinic",
		Rounds:      1,
		BatchSize:   5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source connection name")
}
