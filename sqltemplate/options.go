package sqltemplate

import (
	"time"
)

// Logger interface for SQL query logging, operational messages, warnings, and
// error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting template performance and
// operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
}

// Option defines a functional option for configuring a Template.
type Option func(*Template) error

// WithLogger sets the logger for the Template.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and durations (production-safe)
// Warn level: non-critical issues like resource release failures
// Error level: critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(t *Template) error {
		t.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Template.
// The collector will receive query/update durations and error counters.
func WithMetrics(collector MetricsCollector) Option {
	return func(t *Template) error {
		t.metricsCollector = collector
		return nil
	}
}
