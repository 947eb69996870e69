package service

import "errors"

// --- Error Definitions ---
var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrPlanNotFound     = errors.New("training plan not found")
	ErrPlanItemNotFound = errors.New("plan item not found")
	ErrPersistFailed    = errors.New("failed to persist changes")
	ErrLoadFailed       = errors.New("failed to load stored state")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError is a form-level problem shown to the user as a reason and an
// optional hint on how to fix it.
type ValidationError struct {
	Reason string
	Hint   string
}

func (e *ValidationError) Error() string {
	if e.Hint == "" {
		return e.Reason
	}
	return e.Reason + " " + e.Hint
}

// Is makes errors.Is(err, ErrValidationFailed) match every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
