package booking

import (
	"sport-booking/internal/access"
	"sport-booking/internal/data/entity"
)

const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Transition is a status change that applies only while the booking is in one of From.
type Transition struct {
	Action string
	From   []entity.BookingStatus
	To     entity.BookingStatus
}

// Allows reports whether status is a valid source for t.
func (t Transition) Allows(status entity.BookingStatus) bool {
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}

var (
	confirmTransition = Transition{
		Action: ActionConfirm,
		From:   []entity.BookingStatus{entity.BookingStatusPending},
		To:     entity.BookingStatusConfirmed,
	}
	cancelTransition = Transition{
		Action: ActionCancel,
		From:   []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		To:     entity.BookingStatusCancelled,
	}
)

// PlanConfirm authorizes actor to confirm b. Only admins may confirm, and only pending bookings.
func PlanConfirm(actor access.Actor, b *entity.Booking) (Transition, error) {
	if !access.IsAdmin(actor.Role) {
		return Transition{}, ErrForbidden
	}
	return plan(confirmTransition, b)
}

// PlanCancel authorizes actor to cancel b. The owner or an admin may cancel
// a pending or confirmed booking.
func PlanCancel(actor access.Actor, b *entity.Booking) (Transition, error) {
	if b.UserID != actor.ID && !access.IsAdmin(actor.Role) {
		return Transition{}, ErrForbidden
	}
	return plan(cancelTransition, b)
}

// PlanReschedule authorizes a slot change. Same rights as cancelling.
func PlanReschedule(actor access.Actor, b *entity.Booking) error {
	if b.UserID != actor.ID && !access.IsAdmin(actor.Role) {
		return ErrForbidden
	}
	if b.Status.Terminal() {
		return &TransitionError{Action: "reschedule", From: b.Status}
	}
	return nil
}

func plan(t Transition, b *entity.Booking) (Transition, error) {
	if !t.Allows(b.Status) {
		return Transition{}, &TransitionError{Action: t.Action, From: b.Status}
	}
	return t, nil
}
