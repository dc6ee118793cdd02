package services

import (
	"errors"
	"fmt"

	"local-services-server/models"
)

// Sentinel errors for the operation-boundary taxonomy. Handlers translate
// these into HTTP status codes; the workflow logic never retries on them.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

// InvalidTransitionError reports an illegal booking status transition,
// naming the attempted from/to pair. It matches ErrConflict via errors.Is.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition from %q to %q", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrConflict
}
