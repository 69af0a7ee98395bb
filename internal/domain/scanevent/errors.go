package scanevent

import (
	"errors"
	"fmt"
)

// Scan event domain errors
var (
	ErrCooldownAfterOut = errors.New("clock in is not allowed yet after clocking out")
	ErrConcurrentScan   = errors.New("another scan for this employee is being processed, retry")
	ErrInvalidDirection = errors.New("direction must be IN or OUT")
	ErrUnexpectedState  = errors.New("unexpected scan state")
)

// CooldownError is returned when an IN arrives too soon after an OUT.
// No row is written; the caller may retry after RetryAfterSeconds.
type CooldownError struct {
	RetryAfterSeconds int
	StatusBefore      PresenceStatus
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry after %d seconds", ErrCooldownAfterOut.Error(), e.RetryAfterSeconds)
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldownAfterOut
}
