package driver

import (
	"context"
	"time"
)

// ConnectionFactory hands out connections on demand. Implementations must
// support independent concurrent acquisition; pooling policy, wait and
// timeout behavior belong to the implementation, not to callers.
type ConnectionFactory interface {
	Acquire(ctx context.Context) (Connection, error)
}

// Connection is a single acquired database connection. It is owned by exactly
// one template call at a time and must be closed when that call returns.
type Connection interface {
	Prepare(ctx context.Context, query string) (Statement, error)
	Close() error
}

// Statement is a prepared, parameterized SQL command bound to a connection.
// Bind indices are 1-based, matching placeholder ordinals.
type Statement interface {
	// Bind sets the parameter at index to value through the generic
	// set-object path, accepting any driver-supported kind.
	Bind(index int, value any) error

	// BindInt64 and BindString are the typed binding variants.
	BindInt64(index int, value int64) error
	BindString(index int, value string) error

	// Query runs the statement in query mode and returns a cursor over the
	// result rows.
	Query(ctx context.Context) (Cursor, error)

	// Exec runs the statement in update mode and returns the affected row count.
	Exec(ctx context.Context) (int64, error)

	Close() error
}

// Cursor iterates over result rows one at a time, exposing typed column
// access by name for the current row.
type Cursor interface {
	// Next advances to the next row, returning false when no rows remain.
	Next() bool

	// RowNumber reports the 1-based ordinal of the current row,
	// or 0 before the first call to Next.
	RowNumber() int

	Int64(column string) (int64, error)
	Float64(column string) (float64, error)
	Bool(column string) (bool, error)
	String(column string) (string, error)
	Bytes(column string) ([]byte, error)
	Time(column string) (time.Time, error)

	// Value returns the raw driver value for column and whether the column
	// exists in the result set.
	Value(column string) (any, bool)

	// Err reports any error encountered during iteration.
	Err() error

	Close() error
}
