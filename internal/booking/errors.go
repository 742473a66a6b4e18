package booking

import (
	"errors"
	"fmt"

	"sport-booking/internal/data/entity"
)

var (
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrSlotConflict      = errors.New("field is already booked for this time")
	ErrFieldUnavailable  = errors.New("field is not available for booking")
	ErrPastDate          = errors.New("booking date is in the past")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
)

// SlotConflictError names the existing reservation that overlaps the request.
type SlotConflictError struct {
	Start entity.Clock
	End   entity.Clock
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s (%s - %s)", ErrSlotConflict.Error(), e.Start, e.End)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// TransitionError reports an action attempted from a status that does not allow it.
type TransitionError struct {
	Action string
	From   entity.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking with status %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
