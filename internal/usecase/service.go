package usecase

import (
	"time"

	"sport-booking/internal/data/entity"
	"sport-booking/internal/data/repository"
	"sport-booking/pkg/events"
	"sport-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Field   FieldService
	Booking BookingService
}

// NewService builds every service on top of repo. loc decides which calendar
// day counts as today for availability and past-date checks.
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	publisher events.Publisher,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	clock := newLocalClock(time.Now, loc)

	return &Service{
		Auth:    NewAuthService(repo.User, repo.Session, config.Session, log),
		User:    NewUserService(repo.User, log),
		Field:   NewFieldService(repo.Field, repo.Booking, clock, log),
		Booking: NewBookingService(repo.Booking, publisher, clock, log),
	}
}

// localClock reads the current time in the configured location.
type localClock struct {
	now func() time.Time
	loc *time.Location
}

func newLocalClock(now func() time.Time, loc *time.Location) localClock {
	if loc == nil {
		loc = time.Local
	}
	return localClock{now: now, loc: loc}
}

func (c localClock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is midnight of the current local date, as stored in booking_date.
func (c localClock) Today() time.Time {
	return entity.DateOf(c.Now())
}
