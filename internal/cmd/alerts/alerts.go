// Package alerts prints short status notices for the user, separate from
// the structured log.
package alerts

import (
	"fmt"
	"io"
)

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// Warningf creates a warning alert from a format string.
func Warningf(format string, args ...any) *Alert {
	return NewWarning(fmt.Sprintf(format, args...))
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the uncolored alert line.
func (a *Alert) String() string {
	return a.line(a.Level.Icon())
}

func (a *Alert) line(icon string) string {
	message := fmt.Sprintf("%s %s", icon, a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that prints one line per alert to w,
// followed by its indented details. The icon is colored unless noColor
// is set or color output is globally disabled.
func NewWriterTo(w io.Writer, noColor bool) Writer {
	return WriterFunc(func(alert *Alert) error {
		c := alert.Level.Color()
		if noColor {
			c.DisableColor()
		}
		if _, err := fmt.Fprintln(w, alert.line(c.Sprint(alert.Level.Icon()))); err != nil {
			return err
		}
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(w, "   %s\n", detail); err != nil {
				return err
			}
		}
		return nil
	})
}
