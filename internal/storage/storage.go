package storage

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCaseSheetNotFound = errors.New("case sheet not found")
)
