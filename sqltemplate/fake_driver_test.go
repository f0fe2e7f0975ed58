package sqltemplate_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

// fakeRow is one result row, keyed by column name.
type fakeRow map[string]any

// releaseLog records resource release events in call order so tests can
// assert reverse-acquisition release.
type releaseLog struct {
	events []string
}

func (l *releaseLog) record(event string) {
	l.events = append(l.events, event)
}

type fakeFactory struct {
	conn       *fakeConnection
	acquireErr error
	acquired   int
}

func (f *fakeFactory) Acquire(_ context.Context) (driver.Connection, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}

	f.acquired++

	return f.conn, nil
}

type fakeConnection struct {
	stmt       *fakeStatement
	prepareErr error
	closeErr   error
	closeCount int
	releases   *releaseLog
}

func (c *fakeConnection) Prepare(_ context.Context, _ string) (driver.Statement, error) {
	if c.prepareErr != nil {
		return nil, c.prepareErr
	}

	return c.stmt, nil
}

func (c *fakeConnection) Close() error {
	c.closeCount++
	if c.releases != nil {
		c.releases.record("connection")
	}

	return c.closeErr
}

type fakeStatement struct {
	bound        map[int]any
	bindOrder    []int
	queryErr     error
	execErr      error
	rowsAffected int64
	cursor       *fakeCursor
	closeErr     error
	closeCount   int
	releases     *releaseLog
}

func (s *fakeStatement) Bind(index int, value any) error {
	if s.bound == nil {
		s.bound = make(map[int]any)
	}

	s.bound[index] = value
	s.bindOrder = append(s.bindOrder, index)

	return nil
}

func (s *fakeStatement) BindInt64(index int, value int64) error {
	return s.Bind(index, value)
}

func (s *fakeStatement) BindString(index int, value string) error {
	return s.Bind(index, value)
}

func (s *fakeStatement) Query(_ context.Context) (driver.Cursor, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}

	return s.cursor, nil
}

func (s *fakeStatement) Exec(_ context.Context) (int64, error) {
	if s.execErr != nil {
		return 0, s.execErr
	}

	return s.rowsAffected, nil
}

func (s *fakeStatement) Close() error {
	s.closeCount++
	if s.releases != nil {
		s.releases.record("statement")
	}

	return s.closeErr
}

type fakeCursor struct {
	rows       []fakeRow
	position   int
	iterErr    error
	closeErr   error
	closeCount int
	releases   *releaseLog
}

func (c *fakeCursor) Next() bool {
	if c.position >= len(c.rows) {
		return false
	}

	c.position++

	return true
}

func (c *fakeCursor) RowNumber() int {
	return c.position
}

func (c *fakeCursor) current() fakeRow {
	return c.rows[c.position-1]
}

func (c *fakeCursor) Value(column string) (any, bool) {
	value, ok := c.current()[column]
	return value, ok
}

func (c *fakeCursor) lookup(column string) (any, error) {
	value, ok := c.Value(column)
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}

	return value, nil
}

func (c *fakeCursor) Int64(column string) (int64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("column %q is %T, not an integer", column, value)
	}
}

func (c *fakeCursor) Float64(column string) (float64, error) {
	value, err := c.lookup(column)
	if err != nil {
		return 0, err
	}

	if v, ok := value.(float64); ok {
		return v, nil
	}

	return 0, fmt.Errorf("column %q is %T, not a float", column, value)
}

func (c *fakeCursor) Bool(column string) (bool, error) {
	value, err := c.lookup(column)
	if err != nil {
		return false, err
	}

	if v, ok := value.(bool); ok {
		return v, nil
	}

	return false, fmt.Errorf("column %q is %T, not a bool", column, value)
}

func (c *fakeCursor) String(column string) (string, error) {
	value, err := c.lookup(column)
	if err != nil {
		return "", err
	}

	if v, ok := value.(string); ok {
		return v, nil
	}

	return "", fmt.Errorf("column %q is %T, not a string", column, value)
}

func (c *fakeCursor) Bytes(column string) ([]byte, error) {
	value, err := c.lookup(column)
	if err != nil {
		return nil, err
	}

	if v, ok := value.([]byte); ok {
		return v, nil
	}

	return nil, fmt.Errorf("column %q is %T, not bytes", column, value)
}

func (c *fakeCursor) Time(column string) (time.Time, error) {
	value, err := c.lookup(column)
	if err != nil {
		return time.Time{}, err
	}

	if v, ok := value.(time.Time); ok {
		return v, nil
	}

	return time.Time{}, fmt.Errorf("column %q is %T, not a time", column, value)
}

func (c *fakeCursor) Err() error {
	return c.iterErr
}

func (c *fakeCursor) Close() error {
	c.closeCount++
	if c.releases != nil {
		c.releases.record("cursor")
	}

	return c.closeErr
}

// newFakeStack wires a factory/connection/statement/cursor chain over the
// given rows, sharing one release log.
func newFakeStack(rows ...fakeRow) (*fakeFactory, *fakeConnection, *fakeStatement, *fakeCursor, *releaseLog) {
	releases := &releaseLog{}
	cursor := &fakeCursor{rows: rows, releases: releases}
	stmt := &fakeStatement{cursor: cursor, releases: releases}
	conn := &fakeConnection{stmt: stmt, releases: releases}
	factory := &fakeFactory{conn: conn}

	return factory, conn, stmt, cursor, releases
}

var errBoom = errors.New("boom")
