package actions

import (
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

// mockHandler serves saved connections from memory by type and details.
type mockHandler map[string]shared.ConnectionDetails

func (m mockHandler) GetConnectionType(name string) (string, error) {
	c, ok := m[name]
	if !ok {
		return "", fmt.Errorf("connection %q not found", name)
	}
	return c.Type, nil
}

func (m mockHandler) GetConnectionDetails(name string) (*shared.ConnectionDetails, error) {
	c, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("connection %q not found", name)
	}
	return &c, nil
}

func testHandler() mockHandler {
	return mockHandler{
		"pg":     {Type: constants.ConnectionTypePostgres, LogicalName: "pg", Data: map[string]string{"dsn": "postgres://u:p@h/db"}},
		"oracle": {Type: "oracle", LogicalName: "oracle"},
	}
}

func TestRunQueryExecutes(t *testing.T) {
	opener, mock := mockOpener(t, constants.ConnectionTypePostgres)
	mock.ExpectQuery("select patient_id from clinic.patients").
		WillReturnRows(sqlmock.NewRows([]string{"patient_id"}))
	err := RunQuery(&QueryConfig{
		LogLevel:     "error",
		Connections:  testHandler(),
		SourceString: ConnectionObject{ConnectionObject: "pg"},
		Query:        "select patient_id from clinic.patients",
		Opener:       opener,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunQueryRejectsUnsupportedType(t *testing.T) {
	err := RunQuery(&QueryConfig{
		LogLevel:     "error",
		Connections:  testHandler(),
		SourceString: ConnectionObject{ConnectionObject: "oracle"},
		Query:        "select 1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestRunQueryUnknownConnection(t *testing.T) {
	err := RunQuery(&QueryConfig{
		LogLevel:     "error",
		Connections:  testHandler(),
		SourceString: ConnectionObject{ConnectionObject: "nope"},
		Query:        "select 1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
