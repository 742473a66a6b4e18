// Package access decides who may manage fields and see or change bookings.
package access

import (
	"sport-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func IsAdmin(role entity.UserRole) bool {
	return role == entity.RoleAdmin
}

// CanManageField gates create, update and delete of fields.
// Listing, retrieval and availability are open to everyone.
func CanManageField(role entity.UserRole) bool {
	return IsAdmin(role)
}

// CanViewBooking is true for admins and for the booking's owner.
func CanViewBooking(actor Actor, booking *entity.Booking) bool {
	if booking == nil {
		return false
	}
	return IsAdmin(actor.Role) || booking.UserID == actor.ID
}

// BookingScope restricts booking listings. The zero value matches nothing.
type BookingScope struct {
	All     bool
	OwnerID uuid.UUID
}

// ScopeBookings returns the listing predicate for actor.
func ScopeBookings(actor Actor) BookingScope {
	if IsAdmin(actor.Role) {
		return BookingScope{All: true}
	}
	return BookingScope{OwnerID: actor.ID}
}

// Allows reports whether booking falls inside the scope.
func (s BookingScope) Allows(booking *entity.Booking) bool {
	if booking == nil {
		return false
	}
	if s.All {
		return true
	}
	return s.OwnerID != uuid.Nil && booking.UserID == s.OwnerID
}
