package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/unimarket/catalog-service/internal/adapter/http/middleware"
	"github.com/unimarket/catalog-service/internal/platform/logger"
	"github.com/unimarket/catalog-service/internal/platform/metrics"
)

// NewRouter wires the catalog's HTTP surface. Reads are public; mutations
// require a valid JWT.
func NewRouter(h *CatalogHandler, jwtSecret string, m *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.Recoverer)
	mux.Use(chimiddleware.RequestID)
	mux.Use(middleware.RequestMetrics(m))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Public read surface.
	mux.Get("/api/listings/search", h.HandleSearchListings)
	mux.Get("/api/listings/featured", h.HandleFeatured)
	mux.Get("/api/listings/{id}", h.HandleGetListing)
	mux.Get("/api/owners/{ownerId}/listings", h.HandleListByOwner)

	// Mutations require authentication.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))
		r.Post("/api/listings", h.HandleCreateListing)
		r.Put("/api/listings/{id}", h.HandleUpdateListing)
		r.Delete("/api/listings/{id}", h.HandleDeleteListing)
		r.Post("/api/listings/{id}/photos", h.HandleUploadPhoto)
	})

	return mux
}
