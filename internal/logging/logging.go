// Package logging builds the process logger and holds the canonical log field helpers.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyListID     = "list_id"
	KeyListName   = "list_name"
	KeyTaskID     = "task_id"
	KeyAction     = "action"
	KeyTotal      = "total"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyRequestID  = "request_id"
	KeyError      = "error"
)

// New returns a slog logger writing through a charmbracelet/log handler.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return slog.New(handler)
}

// ParseLevel maps a level name onto a charmbracelet/log level.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	return err == nil
}

func ListID(id int64) slog.Attr       { return slog.Int64(KeyListID, id) }
func ListName(n string) slog.Attr     { return slog.String(KeyListName, n) }
func TaskID(id int64) slog.Attr       { return slog.Int64(KeyTaskID, id) }
func Action(a string) slog.Attr       { return slog.String(KeyAction, a) }
func Total(n int64) slog.Attr         { return slog.Int64(KeyTotal, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
