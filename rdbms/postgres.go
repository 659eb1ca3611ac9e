package rdbms

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
	"github.com/lib/pq"
)

// PostgresConnectionDetails holds a Postgres DSN of the form:
// postgres://<user>:<password>@<host>:<port>/<database>?sslmode=<mode>
type PostgresConnectionDetails struct {
	Dsn            string `errorTxt:"Postgres DSN" mandatory:"yes"`
	OriginalScheme string
}

func (d PostgresConnectionDetails) String() string {
	dsn := DsnWithDefaultScheme(d.Dsn, constants.ConnectionTypePostgres)
	u, err := pq.ParseURL(dsn)
	if err != nil {
		return "postgres://(unparsable DSN)"
	}
	// pq.ParseURL expands to key=value pairs; redact the password one.
	parts := strings.Fields(u)
	for i, p := range parts {
		if strings.HasPrefix(p, "password=") {
			parts[i] = "password=xxxxx"
		}
	}
	return strings.Join(parts, " ")
}

func (d PostgresConnectionDetails) Parse() error {
	dsn := DsnWithDefaultScheme(d.Dsn, constants.ConnectionTypePostgres)
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return fmt.Errorf("unsupported Postgres DSN format %q", d.Dsn)
	}
	_, err := pq.ParseURL(dsn)
	return err
}

func (d PostgresConnectionDetails) GetScheme() (string, error) {
	return constants.ConnectionTypePostgres, nil
}

func (d PostgresConnectionDetails) GetMap(m map[string]string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[shared.DefaultDsnConnectionKeyNames.Dsn] = DsnWithDefaultScheme(d.Dsn, constants.ConnectionTypePostgres)
	return m
}

// DsnWithDefaultScheme prefixes dsn with "<scheme>://" when no scheme is present.
func DsnWithDefaultScheme(dsn string, scheme string) string {
	if strings.Contains(dsn, "://") {
		return dsn
	}
	return scheme + "://" + dsn
}

// newPostgresConnection opens the Postgres database connection specified in d.
func newPostgresConnection(log logger.Logger, d *shared.DsnConnectionDetails) (shared.Connector, error) {
	dsn := DsnWithDefaultScheme(d.Dsn, constants.ConnectionTypePostgres)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	log.Info("Successful database connection to Postgres.")
	return shared.NewConnection(db, constants.ConnectionTypePostgres), nil
}

// PostgresExecWithConnDetails will open a connection to Postgres, execute the SQL
// and close the connection.
func PostgresExecWithConnDetails(log logger.Logger, connDetails *shared.DsnConnectionDetails, sqlText string) error {
	conn, err := newPostgresConnection(log, connDetails)
	if err != nil {
		return err
	}
	defer conn.Close()
	if _, err := conn.Exec(sqlText); err != nil {
		return fmt.Errorf("failed to execute statement: '%v', error: %v", sqlText, err)
	}
	return nil
}
