package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound    = errors.New("booking session not found or expired")
	ErrSessionNotEditable = errors.New("booking session is past slot selection")
	ErrFutsalNotFound     = errors.New("futsal not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotPayable         = errors.New("booking is not awaiting payment")
	ErrSlotUnavailable    = errors.New("selected slot is no longer available")
	ErrUnverifiedSlots    = errors.New("could not verify availability for the selected date")
	ErrInvalidSlot        = errors.New("selected slot is not valid")
	ErrWindowUnavailable  = errors.New("venue has no operating hours for the selected date")
)

// SlotError carries a user-facing rejection reason from the validator.
type SlotError struct {
	Code    string
	Message string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotError(code, msg string) error {
	return &SlotError{Code: code, Message: msg}
}
