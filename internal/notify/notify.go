// Package notify delivers staff notifications to chat platforms (Slack, Discord).
package notify

import (
	"context"
	"errors"
)

// Severity levels for events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityUrgent  = "urgent"
)

// Sidebar color hints per severity.
const (
	ColorInfo    = "#36a64f"
	ColorWarning = "#ed6c02"
	ColorUrgent  = "#d32f2f"
)

// Event is one notification posted to a staff channel.
type Event struct {
	Title    string
	Body     string
	Severity string // "info", "warning", "urgent"
}

// Notifier delivers events to a staff channel.
type Notifier interface {
	Send(ctx context.Context, ev Event) error
	Close() error
}

// ColorFor maps a severity to its sidebar color hint.
func ColorFor(severity string) string {
	switch severity {
	case SeverityUrgent:
		return ColorUrgent
	case SeverityWarning:
		return ColorWarning
	}
	return ColorInfo
}

// Multi fans an event out to several notifiers. Every notifier is attempted;
// errors are joined.
type Multi []Notifier

// Send delivers the event to all notifiers.
func (m Multi) Send(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes all notifiers.
func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
