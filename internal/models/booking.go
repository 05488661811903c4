package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type CallType string

const (
	CallTypeVideo CallType = "video"
	CallTypeVoice CallType = "voice"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the statuses reachable from each status.
// A cancelled booking has to be reopened before it can be confirmed again.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPending, StatusCancelled},
	StatusCancelled: {StatusPending},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a booking in status s may move to next.
// Staying in the same status is always allowed.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() {
		return false
	}

	if s == next {
		return true
	}

	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Transition returns next or ErrInvalidTransition.
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}

	return next, nil
}

func (c CallType) Valid() bool {
	return c == CallTypeVideo || c == CallTypeVoice
}

type Booking struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PreferredTime string    `json:"preferred_time"`
	CallType      CallType  `json:"call_type"`
	Status        Status    `json:"status"`
	CaseSheetURL  *string   `json:"case_sheet_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBooking is the public intake payload; status and timestamps are server-owned.
type NewBooking struct {
	Name          string
	Email         string
	Phone         string
	PreferredTime string
	CallType      CallType
}

var preferredTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParsePreferredTime parses a preferred_time value as submitted by the booking form.
func ParsePreferredTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range preferredTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}
