package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorCannotDeleteDefault is returned when a delete/deactivate targets the
// record currently holding the default flag in its scope.
var ErrorCannotDeleteDefault = errors.New("cannot delete default record, set another default first")

// ErrorDefaultFlagConflict signals a data-integrity violation: more than one
// record marked default within one scope. Never repaired silently.
var ErrorDefaultFlagConflict = errors.New("more than one default record in scope")

// ErrorAllocationExhausted is returned when the per-day quote number sequence
// would exceed the two-digit format.
var ErrorAllocationExhausted = errors.New("quote number sequence exhausted for date")

// ErrorDuplicateNumber is returned when an insert hits the unique index on
// quote_number; the caller retries allocation.
var ErrorDuplicateNumber = errors.New("duplicate quote number")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
