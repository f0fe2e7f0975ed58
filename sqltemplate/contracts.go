package sqltemplate

import (
	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

// RowMapper converts exactly one cursor row into one domain value.
// rowNum is the 1-based ordinal of the row as reported by the cursor, so
// mapping logic may depend on absolute row position even when extraction
// started partway through a cursor.
//
// A RowMapper must not advance or close the cursor.
type RowMapper[T any] func(cursor driver.Cursor, rowNum int) (T, error)

// ParameterBinder sets statement parameters by side effect on the prepared
// statement. It must not run or close the statement.
type ParameterBinder func(stmt driver.Statement) error

// ResultExtractor consumes zero or more cursor rows and produces one result
// value. It fully owns cursor iteration within the call, but never the
// cursor's lifecycle: the template releases the cursor after extraction on
// every exit path.
//
// Errors returned by an extractor are surfaced to the caller unwrapped,
// since they carry caller-domain meaning.
type ResultExtractor[T any] func(cursor driver.Cursor) (T, error)
