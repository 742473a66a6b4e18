package wire

import (
	"context"
	"net/http"
	"time"

	"sport-booking/internal/adaptor"
	"sport-booking/internal/data/repository"
	"sport-booking/internal/usecase"
	"sport-booking/pkg/events"
	"sport-booking/pkg/middleware"
	"sport-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. ctx bounds background work
// started here, such as rate limiter cleanup.
func Wiring(
	ctx context.Context,
	repo *repository.Repository,
	config *utils.Config,
	publisher events.Publisher,
	loc *time.Location,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, publisher, loc, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(ctx, config.RateLimit.RPS, config.RateLimit.Burst, 3*time.Minute)

	return &App{
		Router: setupRouter(handler, repo, config, limiter, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())

	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireField(r, handler.Field, repo, config, logger)
	wireBooking(r, handler.Booking, repo, limiter, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
