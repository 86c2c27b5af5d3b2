package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging interface used across the service
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Debug(ctx context.Context, message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// WithCorrelationID stores the request correlation ID for later log entries
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the correlation ID stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

type structuredLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
	caller bool
}

// LoggerConfig configures NewStructuredLogger
type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
	// Output defaults to os.Stdout
	Output io.Writer
	// ReportCaller adds a "caller" field with file:line of the log call
	ReportCaller bool
}

// NewStructuredLogger builds a logrus-backed Logger
func NewStructuredLogger(config LoggerConfig) Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "json" {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	logrusLogger.SetOutput(out)

	fields := logrus.Fields{}
	if config.ServiceName != "" {
		fields["service"] = config.ServiceName
	}

	return &structuredLogger{
		logger: logrusLogger,
		fields: fields,
		caller: config.ReportCaller,
	}
}

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() Logger {
	return NewStructuredLogger(LoggerConfig{Level: "panic", Output: io.Discard})
}

func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Info(message)
}

func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.entry(ctx, err, fields).Error(message)
}

func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Warn(message)
}

func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Debug(message)
}

// WithFields returns a child logger that adds fields to every entry
func (l *structuredLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &structuredLogger{
		logger: l.logger,
		fields: merged,
		caller: l.caller,
	}
}

func (l *structuredLogger) entry(ctx context.Context, err error, fields map[string]interface{}) *logrus.Entry {
	merged := make(logrus.Fields, len(l.fields)+len(fields)+3)
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	if id := CorrelationID(ctx); id != "" {
		merged["correlation_id"] = id
	}
	if err != nil {
		merged[logrus.ErrorKey] = err.Error()
	}
	if l.caller {
		// skip entry and the exported level method
		if _, file, line, ok := runtime.Caller(2); ok {
			merged["caller"] = fmt.Sprintf("%s:%d", file, line)
		}
	}

	return l.logger.WithFields(merged)
}

// LogAuthEvent records an authentication outcome. Failures are logged at warn level.
func LogAuthEvent(ctx context.Context, logger Logger, event string, userID, ip string, success bool, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "auth"
	fields["auth_event"] = event
	fields["user_id"] = userID
	fields["ip"] = ip
	fields["success"] = success

	if !success {
		logger.Warn(ctx, fmt.Sprintf("Auth event failed: %s", event), fields)
		return
	}
	logger.Info(ctx, fmt.Sprintf("Auth event: %s", event), fields)
}

// LogSecurityEvent records a security relevant event. Severity is HIGH, MEDIUM or LOW.
func LogSecurityEvent(ctx context.Context, logger Logger, event string, severity string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "security"
	fields["security_event"] = event
	fields["severity"] = severity

	message := fmt.Sprintf("Security event: %s", event)

	switch severity {
	case "HIGH":
		logger.Error(ctx, message, nil, fields)
	case "MEDIUM":
		logger.Warn(ctx, message, fields)
	default:
		logger.Info(ctx, message, fields)
	}
}

// LogPerformance records how long an operation took
func LogPerformance(ctx context.Context, logger Logger, operation string, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "performance"
	fields["operation"] = operation
	fields["duration_ms"] = duration.Milliseconds()

	logger.Debug(ctx, fmt.Sprintf("Performance: %s took %s", operation, duration), fields)
}
