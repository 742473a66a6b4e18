package wire

import (
	"sport-booking/internal/adaptor"
	"sport-booking/internal/data/repository"
	"sport-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", bookingHandler.ListBookings) // admin sees all, users their own
		r.Get("/mine", bookingHandler.MyBookings)
		r.Get("/{id}", bookingHandler.GetBooking)

		// writes are throttled per user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, log))

			r.Post("/", bookingHandler.CreateBooking)
			r.Put("/{id}", bookingHandler.RescheduleBooking)
			r.Post("/{id}/cancel", bookingHandler.CancelBooking)
			r.Post("/{id}/confirm", bookingHandler.ConfirmBooking) // admin only, enforced by the lifecycle rules
		})
	})

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(log),
	).Delete("/api/admin/bookings/{id}", bookingHandler.DeleteBooking)
}
