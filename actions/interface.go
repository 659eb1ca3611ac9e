package actions

import (
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type ConnectionHandler interface {
	GetConnectionType(connectionName string) (connectionType string, err error)
	GetConnectionDetails(connectionName string) (connectionDetails *shared.ConnectionDetails, err error)
}

type ConnectionLoader interface {
	LoadConnection(connectionName string) (shared.ConnectionDetails, error)
}

type ConnectionGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
	GetAllKeys() ([]string, error)
}

type ConnectionValidator interface {
	Parse() error
	GetMap(m map[string]string) map[string]string
	GetScheme() (string, error)
}

// ConnectorOpener opens database connections from saved connection details.
// Tests substitute a sqlmock-backed implementation.
type ConnectorOpener func(conn shared.ConnectionDetails) (shared.Connector, error)
