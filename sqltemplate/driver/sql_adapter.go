package driver

import (
	"context"
	"database/sql"
)

// SQLFactory implements ConnectionFactory for sql.DB.
type SQLFactory struct {
	db *sql.DB
}

// NewSQLFactory creates a connection factory backed by a sql.DB pool.
func NewSQLFactory(db *sql.DB) *SQLFactory {
	return &SQLFactory{db: db}
}

// Acquire checks out a dedicated connection from the pool.
func (f *SQLFactory) Acquire(ctx context.Context) (Connection, error) {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlConnection{conn: conn}, nil
}

// sqlConnection wraps sql.Conn to implement the Connection interface.
type sqlConnection struct {
	conn *sql.Conn
}

// Prepare compiles the statement text on this connection.
func (c *sqlConnection) Prepare(ctx context.Context, query string) (Statement, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdStatement{stmt: stmt}, nil
}

// Close returns the connection to the pool.
func (c *sqlConnection) Close() error {
	return c.conn.Close()
}
