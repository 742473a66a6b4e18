package booking

import (
	"testing"

	"sport-booking/internal/access"
	"sport-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingWithStatus(owner uuid.UUID, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{Base: entity.Base{ID: uuid.New()}, UserID: owner, Status: status}
}

func TestPlanConfirm(t *testing.T) {
	owner := uuid.New()
	admin := access.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	user := access.Actor{ID: owner, Role: entity.RoleUser}

	_, err := PlanConfirm(user, bookingWithStatus(owner, entity.BookingStatusPending))
	assert.ErrorIs(t, err, ErrForbidden)

	tr, err := PlanConfirm(admin, bookingWithStatus(owner, entity.BookingStatusPending))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, tr.To)
	assert.True(t, tr.Allows(entity.BookingStatusPending))
	assert.False(t, tr.Allows(entity.BookingStatusConfirmed))

	for _, status := range []entity.BookingStatus{
		entity.BookingStatusConfirmed, entity.BookingStatusCancelled, entity.BookingStatusCompleted,
	} {
		_, err := PlanConfirm(admin, bookingWithStatus(owner, status))
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", status)
	}
}

func TestPlanCancel(t *testing.T) {
	owner := uuid.New()
	ownerActor := access.Actor{ID: owner, Role: entity.RoleUser}
	stranger := access.Actor{ID: uuid.New(), Role: entity.RoleUser}
	admin := access.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	for _, status := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed} {
		tr, err := PlanCancel(ownerActor, bookingWithStatus(owner, status))
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, tr.To)

		_, err = PlanCancel(admin, bookingWithStatus(owner, status))
		assert.NoError(t, err)

		_, err = PlanCancel(stranger, bookingWithStatus(owner, status))
		assert.ErrorIs(t, err, ErrForbidden)
	}

	for _, status := range []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusCompleted} {
		_, err := PlanCancel(ownerActor, bookingWithStatus(owner, status))
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.EqualError(t, err, "cannot cancel booking with status "+string(status))
	}
}

func TestPlanReschedule(t *testing.T) {
	owner := uuid.New()
	ownerActor := access.Actor{ID: owner, Role: entity.RoleUser}

	assert.NoError(t, PlanReschedule(ownerActor, bookingWithStatus(owner, entity.BookingStatusConfirmed)))
	assert.ErrorIs(t, PlanReschedule(access.Actor{ID: uuid.New(), Role: entity.RoleUser},
		bookingWithStatus(owner, entity.BookingStatusPending)), ErrForbidden)
	assert.ErrorIs(t, PlanReschedule(ownerActor, bookingWithStatus(owner, entity.BookingStatusCancelled)), ErrInvalidTransition)
}
