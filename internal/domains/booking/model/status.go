package model

import "fmt"

// Status is the lifecycle state of a booking.
//
// Transitions only move forward or to cancelled:
//
//	pending -> confirmed -> completed
//	pending / confirmed -> cancelled
//
// Completion requires prior confirmation. Completed and cancelled are
// terminal and release the booked slot.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus returns the Status for the given string, or an error for
// anything outside the four recognized values.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unrecognized booking status %q", value)
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldsSlot reports whether a booking in this status still occupies its
// (provider, date, time slot) triple.
func (s Status) HoldsSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo reports whether the transition from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// NonTerminalStatuses lists the statuses that hold a slot, for filtering.
func NonTerminalStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}
