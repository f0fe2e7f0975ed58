package sqltemplate

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

const (
	logMsgAcquireConnFailed = "failed to acquire database connection"
	logMsgPrepareStmtFailed = "failed to prepare statement"
	logMsgBindParamsFailed  = "failed to bind statement parameters"
	logMsgQueryFailed       = "statement query execution failed"
	logMsgUpdateFailed      = "statement update execution failed"
	logMsgCloseConnFailed   = "failed to close database connection"
	logMsgCloseStmtFailed   = "failed to close statement"
	logMsgCloseCursorFailed = "failed to close cursor"
	logMsgQueryCompleted    = "query completed"
	logMsgUpdateCompleted   = "update completed"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgOperation         = "sql template operation: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrDurationMS       = "duration_ms"
	logAttrRowsAffected     = "rows_affected"
	logActionQuery          = "query"
	logActionUpdate         = "update"
	metricStatementDuration = "sqltemplate_statement_duration"
	metricStatementErrors   = "sqltemplate_statement_errors"
	metricLabelOperation    = "operation"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// Template executes individual SQL statements against connections handed out
// by a driver.ConnectionFactory, guaranteeing that every acquired connection,
// statement, and cursor is released exactly once, in reverse acquisition
// order, on every exit path.
//
// A Template holds no per-call state, so one instance may be shared across
// goroutines; each call acquires its own connection/statement/cursor triple.
type Template struct {
	factory          driver.ConnectionFactory
	logger           Logger
	metricsCollector MetricsCollector
}

// NewTemplate creates a new Template on top of an explicitly supplied
// connection factory with optional configuration.
func NewTemplate(factory driver.ConnectionFactory, options ...Option) (Template, error) {
	if factory == nil {
		return Template{}, ErrNilConnectionFactory
	}

	t := Template{factory: factory}

	for _, option := range options {
		if err := option(&t); err != nil {
			return Template{}, err
		}
	}

	return t, nil
}

// NewTemplateFromSQLDB creates a new Template using a sql.DB with optional configuration.
func NewTemplateFromSQLDB(db *sql.DB, options ...Option) (Template, error) {
	if db == nil {
		return Template{}, ErrNilDatabaseConnection
	}

	return NewTemplate(driver.NewSQLFactory(db), options...)
}

// NewTemplateFromSQLX creates a new Template using a sqlx.DB with optional configuration.
func NewTemplateFromSQLX(db *sqlx.DB, options ...Option) (Template, error) {
	if db == nil {
		return Template{}, ErrNilDatabaseConnection
	}

	return NewTemplate(driver.NewSQLXFactory(db), options...)
}

// NewTemplateFromPGXPool creates a new Template using a pgx Pool with optional configuration.
func NewTemplateFromPGXPool(pool *pgxpool.Pool, options ...Option) (Template, error) {
	if pool == nil {
		return Template{}, ErrNilDatabaseConnection
	}

	return NewTemplate(driver.NewPGXFactory(pool), options...)
}

// Execute performs exactly one statement execution in query mode:
// acquire connection, prepare query, bind parameters through binder, run, and
// hand the cursor to extractor, returning the extractor's produced value.
//
// Driver-layer failures are wrapped into the package's sentinel errors with
// the original cause attached; extractor errors propagate unwrapped since
// they carry caller-domain meaning. All acquired resources are released
// before Execute returns, regardless of outcome.
func Execute[T any](
	ctx context.Context,
	t Template,
	query string,
	binder ParameterBinder,
	extractor ResultExtractor[T],
) (T, error) {

	var empty T

	conn, stmt, err := t.acquireAndPrepare(ctx, query, binder)
	if err != nil {
		return empty, err
	}
	defer t.closeConnection(conn)
	defer t.closeStatement(stmt)

	cursor, duration, queryErr := t.runQuery(ctx, stmt, query)
	if queryErr != nil {
		return empty, queryErr
	}
	defer t.closeCursor(cursor)

	result, extractErr := extractor(cursor)
	if extractErr != nil {
		return empty, extractErr
	}

	t.recordDuration(logActionQuery, duration)
	t.logOperation(logMsgQueryCompleted, logAttrDurationMS, t.durationToMilliseconds(duration))

	return result, nil
}

// ExecuteUpdate performs exactly one statement execution in update mode and
// returns the affected-row count. No cursor is ever acquired on this path:
// acquisition degrades to connection then statement, release to statement
// then connection.
func ExecuteUpdate(
	ctx context.Context,
	t Template,
	query string,
	binder ParameterBinder,
) (int64, error) {

	conn, stmt, err := t.acquireAndPrepare(ctx, query, binder)
	if err != nil {
		return 0, err
	}
	defer t.closeConnection(conn)
	defer t.closeStatement(stmt)

	rowsAffected, duration, execErr := t.runUpdate(ctx, stmt, query)
	if execErr != nil {
		return 0, execErr
	}

	t.recordDuration(logActionUpdate, duration)
	t.logOperation(
		logMsgUpdateCompleted,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, t.durationToMilliseconds(duration),
	)

	return rowsAffected, nil
}

// QueryForObject executes the query with params bound positionally and maps
// the first matching row. A nil result with a nil error means zero rows
// matched; this is a recoverable absence, not a failure.
//
// The caller must guarantee at most one row matches: if more rows are
// present, only the first is returned and the rest are ignored.
func QueryForObject[T any](
	ctx context.Context,
	t Template,
	query string,
	mapper RowMapper[T],
	params ...any,
) (*T, error) {

	return Execute(ctx, t, query, BindPositional(params...), FirstRow(mapper))
}

// QueryForList executes the query with params bound positionally and maps
// every matching row in cursor order. Zero rows produce an empty, non-nil
// slice, never an error.
func QueryForList[T any](
	ctx context.Context,
	t Template,
	query string,
	mapper RowMapper[T],
	params ...any,
) ([]T, error) {

	return Execute(ctx, t, query, BindPositional(params...), AllRows(mapper))
}

// Update executes a mutating statement with params bound positionally and
// returns the count of affected rows.
func (t Template) Update(ctx context.Context, query string, params ...any) (int64, error) {
	return ExecuteUpdate(ctx, t, query, BindPositional(params...))
}

// acquireAndPrepare performs the shared front half of both execution modes:
// acquire a connection, prepare the statement on it, and bind parameters.
// On failure, everything acquired so far has already been released.
func (t Template) acquireAndPrepare(
	ctx context.Context,
	query sqlQueryString,
	binder ParameterBinder,
) (driver.Connection, driver.Statement, error) {

	conn, acquireErr := t.factory.Acquire(ctx)
	if acquireErr != nil {
		if t.logger != nil {
			t.logger.Error(logMsgAcquireConnFailed, logAttrError, acquireErr.Error())
		}

		return nil, nil, errors.Join(ErrAcquiringConnectionFailed, acquireErr)
	}

	stmt, prepareErr := conn.Prepare(ctx, query)
	if prepareErr != nil {
		if t.logger != nil {
			t.logger.Error(logMsgPrepareStmtFailed, logAttrError, prepareErr.Error(), logAttrQuery, query)
		}
		t.closeConnection(conn)

		return nil, nil, errors.Join(ErrPreparingStatementFailed, prepareErr)
	}

	if bindErr := binder(stmt); bindErr != nil {
		if t.logger != nil {
			t.logger.Error(logMsgBindParamsFailed, logAttrError, bindErr.Error(), logAttrQuery, query)
		}
		t.closeStatement(stmt)
		t.closeConnection(conn)

		return nil, nil, errors.Join(ErrBindingParameterFailed, bindErr)
	}

	return conn, stmt, nil
}

// runQuery executes the prepared statement in query mode and returns the
// cursor with timing information.
func (t Template) runQuery(ctx context.Context, stmt driver.Statement, query sqlQueryString) (
	driver.Cursor,
	time.Duration,
	error,
) {

	start := time.Now()
	cursor, queryErr := stmt.Query(ctx)
	duration := time.Since(start)
	t.logQueryWithDuration(query, logActionQuery, duration)

	if queryErr != nil {
		if t.logger != nil {
			t.logger.Error(logMsgQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, query)
		}
		t.countError(logActionQuery)

		return nil, duration, errors.Join(ErrExecutingQueryFailed, queryErr)
	}

	return cursor, duration, nil
}

// runUpdate executes the prepared statement in update mode and returns the
// affected-row count with timing information.
func (t Template) runUpdate(ctx context.Context, stmt driver.Statement, query sqlQueryString) (
	rowsAffectedInt64,
	time.Duration,
	error,
) {

	start := time.Now()
	rowsAffected, execErr := stmt.Exec(ctx)
	duration := time.Since(start)
	t.logQueryWithDuration(query, logActionUpdate, duration)

	if execErr != nil {
		if t.logger != nil {
			t.logger.Error(logMsgUpdateFailed, logAttrError, execErr.Error(), logAttrQuery, query)
		}
		t.countError(logActionUpdate)

		return 0, duration, errors.Join(ErrExecutingUpdateFailed, execErr)
	}

	return rowsAffected, duration, nil
}

// closeConnection safely closes a connection and logs any errors.
// Release failures never mask the call's primary result.
func (t Template) closeConnection(conn driver.Connection) {
	if closeErr := conn.Close(); closeErr != nil {
		if t.logger != nil {
			t.logger.Warn(logMsgCloseConnFailed, logAttrError, closeErr.Error())
		}
	}
}

// closeStatement safely closes a statement and logs any errors.
func (t Template) closeStatement(stmt driver.Statement) {
	if closeErr := stmt.Close(); closeErr != nil {
		if t.logger != nil {
			t.logger.Warn(logMsgCloseStmtFailed, logAttrError, closeErr.Error())
		}
	}
}

// closeCursor safely closes a cursor and logs any errors.
func (t Template) closeCursor(cursor driver.Cursor) {
	if closeErr := cursor.Close(); closeErr != nil {
		if t.logger != nil {
			t.logger.Warn(logMsgCloseCursorFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level
// if the logger is configured.
func (t Template) logQueryWithDuration(query sqlQueryString, action string, duration time.Duration) {
	if t.logger != nil {
		t.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, t.durationToMilliseconds(duration), logAttrQuery, query)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (t Template) logOperation(action string, args ...any) {
	if t.logger != nil {
		t.logger.Info(logMsgOperation+action, args...)
	}
}

// recordDuration reports statement timing to the metrics collector if one is configured.
func (t Template) recordDuration(operation string, duration time.Duration) {
	if t.metricsCollector != nil {
		t.metricsCollector.RecordDuration(
			metricStatementDuration,
			duration,
			map[string]string{metricLabelOperation: operation},
		)
	}
}

// countError reports a failed statement to the metrics collector if one is configured.
func (t Template) countError(operation string) {
	if t.metricsCollector != nil {
		t.metricsCollector.IncrementCounter(
			metricStatementErrors,
			map[string]string{metricLabelOperation: operation},
		)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (t Template) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
