package notify

import "log/slog"

// Notifier receives transient notifications emitted by mutations so surfaces
// can react without inspecting return values.
type Notifier interface {
	Pending(op, message string)
	Success(op, message string)
	Failure(op, message string)
}

// Log routes notifications to a structured logger. This is the default sink
// for the CLI, where a toast has no meaningful analog.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Pending(op, message string) {
	l.Logger.Info("operation pending", "op", op, "message", message)
}

func (l Log) Success(op, message string) {
	l.Logger.Info("operation succeeded", "op", op, "message", message)
}

func (l Log) Failure(op, message string) {
	l.Logger.Warn("operation failed", "op", op, "message", message)
}

// Discard drops all notifications.
type Discard struct{}

func (Discard) Pending(string, string) {}
func (Discard) Success(string, string) {}
func (Discard) Failure(string, string) {}
