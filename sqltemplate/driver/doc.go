// Package driver defines the narrow database capabilities the SQL template
// consumes and provides adapter implementations for multiple PostgreSQL-capable
// database libraries: pgxpool.Pool, sql.DB, and sqlx.DB.
//
// All adapters present equivalent functionality through a common
// ConnectionFactory interface, so the template works with any supported
// connection type. Each adapter handles the specifics of its library while
// exposing the same connection, prepared statement, and cursor abstractions.
//
// The interfaces are public so tests and callers can substitute their own
// factory implementations without touching a real database.
package driver
