package wire

import (
	"sport-booking/internal/adaptor"
	"sport-booking/internal/data/repository"
	"sport-booking/pkg/middleware"
	"sport-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireField(
	r chi.Router,
	fieldHandler *adaptor.FieldHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/fields", func(r chi.Router) {
		r.Get("/", fieldHandler.ListFields)
		r.Get("/{id}", fieldHandler.GetField)
		r.Get("/{id}/availability", fieldHandler.GetAvailability)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(log),
	).Route("/api/admin/fields", func(r chi.Router) {
		r.Post("/", fieldHandler.CreateField)
		r.Put("/{id}", fieldHandler.UpdateField)
		r.Delete("/{id}", fieldHandler.DeleteField)
	})
}
