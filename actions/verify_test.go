package actions

import (
	"bytes"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

// mockLoader serves saved connections from memory.
type mockLoader map[string]shared.ConnectionDetails

func (m mockLoader) LoadConnection(name string) (shared.ConnectionDetails, error) {
	c, ok := m[name]
	if !ok {
		return shared.ConnectionDetails{}, fmt.Errorf("connection %q not found", name)
	}
	return c, nil
}

func testLoader() mockLoader {
	return mockLoader{
		"pg":   {Type: constants.ConnectionTypePostgres, LogicalName: "pg", Data: map[string]string{"dsn": "postgres://u:p@h/db"}},
		"snow": {Type: constants.ConnectionTypeSnowflake, LogicalName: "snow", Data: map[string]string{"dsn": "snowflake://u:p@acc/db"}},
	}
}

// mockOpener wraps a sqlmock database in the Connector interface.
func mockOpener(t *testing.T, dbType string) (ConnectorOpener, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	opener := func(conn shared.ConnectionDetails) (shared.Connector, error) {
		return shared.NewConnection(db, dbType), nil
	}
	return opener, mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestRunVerifySourcePasses(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	checks := clinic.SourceChecks("clinic", map[string]int{})
	for range checks {
		mock.ExpectQuery("select count").WillReturnRows(countRows(0))
	}
	out := &bytes.Buffer{}
	err := RunVerifySource(&VerifyConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Output:         out,
		Opener:         opener,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, out.String(), "check,value,status")
	assert.Contains(t, out.String(), "duplicate_visits,0,pass")
}

func TestRunVerifySourceFails(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	checks := clinic.SourceChecks("clinic", map[string]int{})
	for range checks {
		mock.ExpectQuery("select count").WillReturnRows(countRows(3))
	}
	out := &bytes.Buffer{}
	err := RunVerifySource(&VerifyConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Output:         out,
		Opener:         opener,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checks failed")
	assert.Contains(t, out.String(), "FAIL")
}

func TestRunVerifySourceFailsOnEmptyDatabase(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	out := &bytes.Buffer{}
	cfg := &VerifyConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
		SchemaName:     "clinic",
		Patients:       constants.DefaultSeedPatients,
		Doctors:        constants.DefaultSeedDoctors,
		Appointments:   constants.DefaultSeedAppointments,
		Output:         out,
		Opener:         opener,
	}
	checks := clinic.SourceChecks("clinic", cfg.expectedVolumes())
	for range checks {
		mock.ExpectQuery("select count").WillReturnRows(countRows(0))
	}
	err := RunVerifySource(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checks failed")
	assert.Contains(t, out.String(), "patients_row_count,0,FAIL")
	assert.Contains(t, out.String(), "visits_row_count,0,FAIL")
	assert.Contains(t, out.String(), constants.EmojiBang)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunVerifySourceRejectsWrongConnectionType(t *testing.T) {
	err := RunVerifySource(&VerifyConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "snow", // snowflake connection offered to the source check.
		SchemaName:     "clinic",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected postgres")
}

func TestRunVerifyTargetIncludesMetadataChecks(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypeSnowflake)
	checks := clinic.TargetChecks("DB.CLINIC", map[string]int{})
	for range checks {
		mock.ExpectQuery("select count").WillReturnRows(countRows(0))
	}
	out := &bytes.Buffer{}
	err := RunVerifyTarget(&VerifyConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "snow",
		SchemaName:     "DB.CLINIC",
		Output:         out,
		Opener:         opener,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "patients_missing_metadata,0,pass")
}

func TestRunVerifyLag(t *testing.T) {
	srcOpener, srcMock := mockOpener(t, constants.ConnectionTypePostgres)
	tgtOpener, tgtMock := mockOpener(t, constants.ConnectionTypeSnowflake)
	for range clinic.TableNames() {
		srcMock.ExpectQuery("select count").WillReturnRows(countRows(100))
		tgtMock.ExpectQuery("select count").WillReturnRows(countRows(100))
	}
	out := &bytes.Buffer{}
	err := RunVerifyLag(&LagConfig{
		LogLevel:         "error",
		Connections:      testLoader(),
		SourceConnection: "pg",
		TargetConnection: "snow",
		SourceSchema:     "clinic",
		TargetPrefix:     "DB.CLINIC",
		Output:           out,
		SourceOpener:     srcOpener,
		TargetOpener:     tgtOpener,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "patients,100,100,0,in sync")
	assert.Contains(t, out.String(), "All tables within tolerance")
}

func TestRunVerifyLagDetectsDrift(t *testing.T) {
	srcOpener, srcMock := mockOpener(t, constants.ConnectionTypePostgres)
	tgtOpener, tgtMock := mockOpener(t, constants.ConnectionTypeSnowflake)
	for range clinic.TableNames() {
		srcMock.ExpectQuery("select count").WillReturnRows(countRows(100))
		tgtMock.ExpectQuery("select count").WillReturnRows(countRows(80))
	}
	out := &bytes.Buffer{}
	err := RunVerifyLag(&LagConfig{
		LogLevel:         "error",
		Connections:      testLoader(),
		SourceConnection: "pg",
		TargetConnection: "snow",
		SourceSchema:     "clinic",
		TargetPrefix:     "DB.CLINIC",
		ToleranceRows:    5,
		Output:           out,
		SourceOpener:     srcOpener,
		TargetOpener:     tgtOpener,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tolerance")
	assert.Contains(t, out.String(), "LAGGING")
}
