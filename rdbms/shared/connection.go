package shared

import (
	"context"
	"database/sql"
)

// Connection is a thin wrapper around Go's native sql.DB that carries the logical
// database type so SQL can be rendered per dialect.
type Connection struct {
	DbSql  *sql.DB
	DbType string
}

// NewConnection wraps an existing sql.DB. Used by the connectors in package rdbms
// and by tests that supply a mock database.
func NewConnection(db *sql.DB, dbType string) *Connection {
	return &Connection{DbSql: db, DbType: dbType}
}

func (c *Connection) Begin() (Transacter, error) {
	tx, err := c.DbSql.Begin()
	return &Tx{tx: tx}, err
}

func (c *Connection) Exec(query string, args ...interface{}) (sql.Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *Connection) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DbSql.ExecContext(ctx, query, args...)
}

func (c *Connection) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return c.QueryContext(context.Background(), query, args...)
}

func (c *Connection) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DbSql.QueryContext(ctx, query, args...)
}

func (c *Connection) Close() {
	_ = c.DbSql.Close()
}

func (c *Connection) GetType() string {
	return c.DbType
}

// Tx implements Transacter over a native sql.Tx.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return t.ExecContext(context.Background(), query, args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRow(query, args...)
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
