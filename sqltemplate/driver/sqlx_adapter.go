package driver

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXFactory implements ConnectionFactory for sqlx.DB.
type SQLXFactory struct {
	db *sqlx.DB
}

// NewSQLXFactory creates a connection factory backed by a sqlx.DB pool.
func NewSQLXFactory(db *sqlx.DB) *SQLXFactory {
	return &SQLXFactory{db: db}
}

// Acquire checks out a dedicated connection from the pool.
func (f *SQLXFactory) Acquire(ctx context.Context) (Connection, error) {
	conn, err := f.db.Connx(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlxConnection{conn: conn}, nil
}

// sqlxConnection wraps sqlx.Conn to implement the Connection interface.
type sqlxConnection struct {
	conn *sqlx.Conn
}

// Prepare compiles the statement text on this connection. The resulting
// statement and cursor share the standard library wrappers since sqlx
// statements embed sql.Stmt.
func (c *sqlxConnection) Prepare(ctx context.Context, query string) (Statement, error) {
	stmt, err := c.conn.PreparexContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdStatement{stmt: stmt.Stmt}, nil
}

// Close returns the connection to the pool.
func (c *sqlxConnection) Close() error {
	return c.conn.Close()
}
