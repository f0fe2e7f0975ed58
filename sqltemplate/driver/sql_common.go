package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidBindIndex = errors.New("bind index must be 1 or greater")

// stdStatement wraps a standard library prepared statement, accumulating
// positionally bound arguments until the statement is run. Shared by the
// database/sql and sqlx adapters.
type stdStatement struct {
	stmt *sql.Stmt
	args []any
}

func (s *stdStatement) Bind(index int, value any) error {
	if index < 1 {
		return errors.Join(ErrInvalidBindIndex, fmt.Errorf("got index %d", index))
	}

	for len(s.args) < index {
		s.args = append(s.args, nil)
	}

	s.args[index-1] = value

	return nil
}

func (s *stdStatement) BindInt64(index int, value int64) error {
	return s.Bind(index, value)
}

func (s *stdStatement) BindString(index int, value string) error {
	return s.Bind(index, value)
}

func (s *stdStatement) Query(ctx context.Context) (Cursor, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}

	return newStdCursor(rows)
}

func (s *stdStatement) Exec(ctx context.Context) (int64, error) {
	result, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (s *stdStatement) Close() error {
	return s.stmt.Close()
}

// stdCursor wraps standard library sql.Rows, materializing each row into a
// name-addressable buffer so mappers can read typed columns by name.
type stdCursor struct {
	rows    *sql.Rows
	columns []string
	indexes map[string]int
	values  []any
	rowNum  int
	scanErr error
}

func newStdCursor(rows *sql.Rows) (*stdCursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		closeErr := rows.Close()
		return nil, errors.Join(err, closeErr)
	}

	indexes := make(map[string]int, len(columns))
	for i, name := range columns {
		indexes[name] = i
	}

	return &stdCursor{
		rows:    rows,
		columns: columns,
		indexes: indexes,
		values:  make([]any, len(columns)),
	}, nil
}

func (c *stdCursor) Next() bool {
	if c.scanErr != nil || !c.rows.Next() {
		return false
	}

	pointers := make([]any, len(c.values))
	for i := range c.values {
		c.values[i] = nil
		pointers[i] = &c.values[i]
	}

	if scanErr := c.rows.Scan(pointers...); scanErr != nil {
		c.scanErr = scanErr
		return false
	}

	c.rowNum++

	return true
}

func (c *stdCursor) RowNumber() int {
	return c.rowNum
}

func (c *stdCursor) Value(column string) (any, bool) {
	index, ok := c.indexes[column]
	if !ok {
		return nil, false
	}

	return c.values[index], true
}

func (c *stdCursor) lookup(column string) (any, error) {
	value, ok := c.Value(column)
	if !ok {
		return nil, errors.Join(ErrNoSuchColumn, fmt.Errorf("column %q", column))
	}

	return value, nil
}

func (c *stdCursor) Int64(column string) (int64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	return toInt64(column, value)
}

func (c *stdCursor) Float64(column string) (float64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	return toFloat64(column, value)
}

func (c *stdCursor) Bool(column string) (bool, error) {
	value, err := c.lookup(column)
	if err != nil {
		return false, err
	}

	return toBool(column, value)
}

func (c *stdCursor) String(column string) (string, error) {
	value, err := c.lookup(column)
	if err != nil {
		return "", err
	}

	return toString(column, value)
}

func (c *stdCursor) Bytes(column string) ([]byte, error) {
	value, err := c.lookup(column)
	if err != nil {
		return nil, err
	}

	return toBytes(column, value)
}

func (c *stdCursor) Time(column string) (time.Time, error) {
	value, err := c.lookup(column)
	if err != nil {
		return time.Time{}, err
	}

	return toTime(column, value)
}

func (c *stdCursor) Err() error {
	if c.scanErr != nil {
		return c.scanErr
	}

	return c.rows.Err()
}

func (c *stdCursor) Close() error {
	return c.rows.Close()
}
