package app

import (
	"log/slog"

	"github.com/treykane/listings/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// It is pre-configured with the component tag "app" so that all log entries
// produced by this package are easily identifiable in log output. The level
// and destination follow whatever logging.Configure last installed.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// simultaneously logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry.
//
// Usage:
//
//	m.setStatusError("Could not act as user", err, "email", email)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
