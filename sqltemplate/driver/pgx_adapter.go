package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXFactory implements ConnectionFactory for pgxpool.Pool.
type PGXFactory struct {
	pool *pgxpool.Pool
}

// NewPGXFactory creates a connection factory backed by a pgx connection pool.
func NewPGXFactory(pool *pgxpool.Pool) *PGXFactory {
	return &PGXFactory{pool: pool}
}

// Acquire checks out a dedicated connection from the pool.
func (f *PGXFactory) Acquire(ctx context.Context) (Connection, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxConnection{conn: conn}, nil
}

// pgxConnection wraps pgxpool.Conn to implement the Connection interface.
type pgxConnection struct {
	conn *pgxpool.Conn
}

// Prepare registers the statement with the connection's statement cache.
// pgx keys cached statements by name, so the statement text doubles as its name.
func (c *pgxConnection) Prepare(ctx context.Context, query string) (Statement, error) {
	if _, err := c.conn.Conn().Prepare(ctx, query, query); err != nil {
		return nil, err
	}

	return &pgxStatement{conn: c.conn, query: query}, nil
}

// Close releases the connection back to the pool.
func (c *pgxConnection) Close() error {
	c.conn.Release()
	return nil
}

// pgxStatement accumulates positionally bound arguments and runs the prepared
// statement through the pool connection.
type pgxStatement struct {
	conn  *pgxpool.Conn
	query string
	args  []any
}

func (s *pgxStatement) Bind(index int, value any) error {
	if index < 1 {
		return errors.Join(ErrInvalidBindIndex, fmt.Errorf("got index %d", index))
	}

	for len(s.args) < index {
		s.args = append(s.args, nil)
	}

	s.args[index-1] = value

	return nil
}

func (s *pgxStatement) BindInt64(index int, value int64) error {
	return s.Bind(index, value)
}

func (s *pgxStatement) BindString(index int, value string) error {
	return s.Bind(index, value)
}

func (s *pgxStatement) Query(ctx context.Context) (Cursor, error) {
	rows, err := s.conn.Query(ctx, s.query, s.args...)
	if err != nil {
		return nil, err
	}

	return newPGXCursor(rows), nil
}

func (s *pgxStatement) Exec(ctx context.Context) (int64, error) {
	tag, err := s.conn.Exec(ctx, s.query, s.args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Close is a no-op: the prepared statement stays in the connection's
// statement cache for reuse.
func (s *pgxStatement) Close() error {
	return nil
}

// pgxCursor wraps pgx.Rows, materializing each row into a name-addressable
// buffer so mappers can read typed columns by name.
type pgxCursor struct {
	rows    pgx.Rows
	indexes map[string]int
	values  []any
	rowNum  int
	readErr error
}

func newPGXCursor(rows pgx.Rows) *pgxCursor {
	descriptions := rows.FieldDescriptions()

	indexes := make(map[string]int, len(descriptions))
	for i, description := range descriptions {
		indexes[description.Name] = i
	}

	return &pgxCursor{rows: rows, indexes: indexes}
}

func (c *pgxCursor) Next() bool {
	if c.readErr != nil || !c.rows.Next() {
		return false
	}

	values, err := c.rows.Values()
	if err != nil {
		c.readErr = err
		return false
	}

	c.values = values
	c.rowNum++

	return true
}

func (c *pgxCursor) RowNumber() int {
	return c.rowNum
}

func (c *pgxCursor) Value(column string) (any, bool) {
	index, ok := c.indexes[column]
	if !ok || index >= len(c.values) {
		return nil, false
	}

	return c.values[index], true
}

func (c *pgxCursor) lookup(column string) (any, error) {
	value, ok := c.Value(column)
	if !ok {
		return nil, errors.Join(ErrNoSuchColumn, fmt.Errorf("column %q", column))
	}

	return value, nil
}

func (c *pgxCursor) Int64(column string) (int64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	return toInt64(column, value)
}

func (c *pgxCursor) Float64(column string) (float64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	return toFloat64(column, value)
}

func (c *pgxCursor) Bool(column string) (bool, error) {
	value, err := c.lookup(column)
	if err != nil {
		return false, err
	}

	return toBool(column, value)
}

func (c *pgxCursor) String(column string) (string, error) {
	value, err := c.lookup(column)
	if err != nil {
		return "", err
	}

	return toString(column, value)
}

func (c *pgxCursor) Bytes(column string) ([]byte, error) {
	value, err := c.lookup(column)
	if err != nil {
		return nil, err
	}

	return toBytes(column, value)
}

func (c *pgxCursor) Time(column string) (time.Time, error) {
	value, err := c.lookup(column)
	if err != nil {
		return time.Time{}, err
	}

	return toTime(column, value)
}

func (c *pgxCursor) Err() error {
	if c.readErr != nil {
		return c.readErr
	}

	return c.rows.Err()
}

func (c *pgxCursor) Close() error {
	c.rows.Close()
	return nil
}
