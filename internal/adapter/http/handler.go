package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/adapter/http/middleware"
	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/catalog/usecase"
	"github.com/unimarket/catalog-service/internal/platform/logger"
)

const maxPhotoSize = 10 << 20 // 10 MiB

// CatalogHandler translates HTTP requests into catalog operations. It holds
// no business logic of its own.
type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	photos  *usecase.PhotoUsecase // nil when object storage is not configured
	logger  *logger.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, photos *usecase.PhotoUsecase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		photos:  photos,
		logger:  log.Named("CatalogHandler"),
	}
}

func (h *CatalogHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.UserIDCtxKey).(string)
	if !ok || ownerID == "" {
		http.Error(w, "user authentication required", http.StatusUnauthorized)
		return
	}

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreateListing", zap.Error(err))
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.catalog.CreateListing(r.Context(), req.toInput(ownerID))
	if err != nil {
		h.writeError(w, "CreateListing", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toListingResponse(listing))
}

func (h *CatalogHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.catalog.GetListing(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetListing", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *CatalogHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for UpdateListing", zap.String("id", id), zap.Error(err))
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.catalog.UpdateListing(r.Context(), id, req.toPatch())
	if err != nil {
		h.writeError(w, "UpdateListing", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *CatalogHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.catalog.DeleteListing(r.Context(), id)
	if err != nil {
		h.writeError(w, "DeleteListing", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *CatalogHandler) HandleListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")
	listings, err := h.catalog.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *CatalogHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	listings, err := h.catalog.Featured(r.Context(), domain.Category(q.Get("category")), limit)
	if err != nil {
		h.writeError(w, "Featured", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *CatalogHandler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listings, searchErr := h.catalog.Search(r.Context(), filter)
	if searchErr != nil {
		h.writeError(w, "SearchListings", searchErr)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *CatalogHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		http.Error(w, "photo storage is not configured", http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing 'photo' form file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		http.Error(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	url, err := h.photos.UploadPhoto(r.Context(), id, header.Filename, data)
	if err != nil {
		h.writeError(w, "UploadPhoto", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// parseFilter builds a search filter from query parameters. Price bounds are
// forwarded individually; the filter itself only applies the range when both
// are present.
func parseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	filter := domain.Filter{
		Category: domain.Category(q.Get("category")),
		Type:     domain.ListingType(q.Get("type")),
		Location: q.Get("location"),
		Status:   domain.ListingStatus(q.Get("status")),
	}

	if raw := q.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Tags = append(filter.Tags, t)
			}
		}
	}

	var pr domain.PriceRange
	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("min_price must be a number")
		}
		pr.Min = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("max_price must be a number")
		}
		pr.Max = &v
	}
	if pr.Min != nil || pr.Max != nil {
		filter.PriceRange = &pr
	}

	if raw := q.Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("verified must be a boolean")
		}
		filter.Verified = &v
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("limit must be an integer")
		}
		filter.Limit = &n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = n
	}
	return filter, nil
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, operation string, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.logger.Warn(operation+": validation rejected", zap.String("field", vErr.Field), zap.Error(err))
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidListingData), errors.Is(err, domain.ErrInvalidFilter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrListingNotFound):
		http.Error(w, "listing not found", http.StatusNotFound)
	default:
		h.logger.Error(operation+" failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
