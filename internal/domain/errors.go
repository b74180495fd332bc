package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Reasons carried by PreconditionError.
const (
	ReasonCustomerNotEligible = "customer not eligible"
	ReasonCarNotAvailable     = "car not available"
	ReasonRentalNotOngoing    = "rental not ongoing"
	ReasonRentalNotFound      = "rental not found"
)

// ValidationError reports missing or malformed input. It is shown to the
// operator as-is and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PreconditionError reports that the records are not in a state that allows
// the operation (inactive customer, rented car, completed rental).
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// StoreError reports a failed or timed-out remote call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PartialFailureError reports that the first step of a two-step mutation
// was applied and the second was not. Car and rental status disagree until
// an operator reconciles them.
type PartialFailureError struct {
	Op        string
	Completed string
	Failed    string
	RentalID  int64
	CarID     int64
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially applied (%s succeeded, %s failed; rental=%d car=%d): %v",
		e.Op, e.Completed, e.Failed, e.RentalID, e.CarID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

func IsStore(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}

func IsPartialFailure(err error) bool {
	var target *PartialFailureError
	return errors.As(err, &target)
}
