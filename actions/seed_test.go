package actions

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
)

func TestRunSeedDataExecutesInOneTransaction(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	stmts, err := clinic.GenerateSeedSQL(clinic.SeedPlan{
		Schema: "clinic", Patients: 100, Doctors: 10, Appointments: 170, Seed: 42,
	})
	require.NoError(t, err)
	mock.ExpectBegin()
	for range stmts {
		mock.ExpectExec("insert into clinic").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	err = RunSeedData(&SeedDataConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Patients:       100,
		Doctors:        10,
		Appointments:   170,
		DataSeed:       42,
		Opener:         opener,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSeedDataRollsBackOnFailure(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	mock.ExpectBegin()
	mock.ExpectExec("insert into clinic").WillReturnError(assert.AnError)
	mock.ExpectRollback()
	err := RunSeedData(&SeedDataConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Patients:       10,
		Doctors:        2,
		Appointments:   20,
		Opener:         opener,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rolled back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSeedDataDryRun(t *testing.T) {
	err := RunSeedData(&SeedDataConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Patients:       5,
		Doctors:        2,
		Appointments:   10,
		DryRun:         true,
	})
	require.NoError(t, err)
}

func TestRunSeedDataRejectsWrongConnectionType(t *testing.T) {
	err := RunSeedData(&SeedDataConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "snow",
		SchemaName:     "clinic",
		Patients:       5,
		Doctors:        2,
		Appointments:   10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected postgres")
}
