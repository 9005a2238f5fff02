package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	natsadapter "github.com/unimarket/catalog-service/internal/adapter/messaging/nats"
	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
	"github.com/unimarket/catalog-service/internal/platform/metrics"
)

// CatalogUsecase implements the catalog's CRUD and query contract on top of a
// ListingRepository. Creation schedules asynchronous verification; every
// lifecycle transition publishes an event.
type CatalogUsecase struct {
	repo     domain.ListingRepository
	cache    ListingCache // optional
	events   EventPublisher
	verifier *Verifier
	metrics  *metrics.MetricsManager // optional
	logger   *logger.Logger
}

func NewCatalogUsecase(
	repo domain.ListingRepository,
	cache ListingCache,
	events EventPublisher,
	verifier *Verifier,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *CatalogUsecase {
	if events == nil {
		events = NopPublisher{}
	}
	return &CatalogUsecase{
		repo:     repo,
		cache:    cache,
		events:   events,
		verifier: verifier,
		metrics:  m,
		logger:   log.Named("CatalogUsecase"),
	}
}

// newListingID returns a time-ordered unique id. UUIDv7 combines a millisecond
// timestamp with random bits, so collisions are practically impossible even
// across restarts.
func newListingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// CreateListing validates the input, stores the listing as pending and
// unverified, schedules verification and returns the stored value.
func (uc *CatalogUsecase) CreateListing(ctx context.Context, in domain.CreateInput) (*domain.Listing, error) {
	uc.logger.Info("Creating listing",
		zap.String("owner_id", in.OwnerID),
		zap.String("category", string(in.Category)),
		zap.String("type", string(in.Type)),
		zap.String("title", in.Title))

	listing, err := domain.NewListing(in)
	if err != nil {
		uc.logger.Warn("Listing validation failed", zap.Error(err))
		uc.metrics.IncError("create", "validation")
		return nil, err
	}

	now := time.Now()
	listing.ID = newListingID()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to store listing", zap.Error(err), zap.String("owner_id", in.OwnerID))
		uc.metrics.IncError("create", "repository")
		return nil, err
	}
	uc.metrics.IncCreated()

	if err := uc.events.Publish(ctx, natsadapter.SubjectListingCreated, listingEvent(listing)); err != nil {
		// Event delivery is best effort; the listing is already stored.
		uc.logger.Warn("Failed to publish listing.created event", zap.Error(err), zap.String("listing_id", listing.ID))
	}

	if uc.verifier != nil {
		uc.verifier.Enqueue(listing.ID)
	}

	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID))
	return listing, nil
}

// UpdateListing merges a partial update. A missing id is a hard failure since
// the caller expected to mutate a known listing. The patch can never change
// id, category or createdAt.
func (uc *CatalogUsecase) UpdateListing(ctx context.Context, id string, patch domain.UpdatePatch) (*domain.Listing, error) {
	uc.logger.Info("Updating listing", zap.String("listing_id", id))

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Warn("Update target not found", zap.String("listing_id", id))
			uc.metrics.IncError("update", "not_found")
		}
		return nil, err
	}

	if err := listing.ApplyUpdate(patch); err != nil {
		uc.logger.Warn("Update validation failed", zap.Error(err), zap.String("listing_id", id))
		uc.metrics.IncError("update", "validation")
		return nil, err
	}
	listing.Touch(time.Now())

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", id))
		uc.metrics.IncError("update", "repository")
		return nil, err
	}
	uc.metrics.IncUpdated()
	uc.invalidateCache(ctx, id)

	if err := uc.events.Publish(ctx, natsadapter.SubjectListingUpdated, listingEvent(listing)); err != nil {
		uc.logger.Warn("Failed to publish listing.updated event", zap.Error(err), zap.String("listing_id", id))
	}
	return listing, nil
}

// GetListing fetches by id, reading through the cache when one is wired.
// Absence is reported as domain.ErrListingNotFound.
func (uc *CatalogUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("Cache read failed, falling through", zap.Error(err), zap.String("listing_id", id))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Cache write failed", zap.Error(err), zap.String("listing_id", id))
		}
	}
	return listing, nil
}

// DeleteListing removes the listing and reports whether anything was removed.
// Deleting an absent id is not an error.
func (uc *CatalogUsecase) DeleteListing(ctx context.Context, id string) (bool, error) {
	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
		uc.metrics.IncError("delete", "repository")
		return false, err
	}
	uc.invalidateCache(ctx, id)

	if removed {
		uc.metrics.IncDeleted()
		if err := uc.events.Publish(ctx, natsadapter.SubjectListingDeleted, map[string]interface{}{"listing_id": id}); err != nil {
			uc.logger.Warn("Failed to publish listing.deleted event", zap.Error(err), zap.String("listing_id", id))
		}
		uc.logger.Info("Listing deleted", zap.String("listing_id", id))
	} else {
		uc.logger.Debug("Delete of absent listing ignored", zap.String("listing_id", id))
	}
	return removed, nil
}

// ListByOwner returns all listings for one owner, in unspecified order.
func (uc *CatalogUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return uc.repo.FindByOwner(ctx, ownerID)
}

// Featured returns up to limit active and verified listings, optionally
// restricted to a category. A non-positive limit falls back to the default.
func (uc *CatalogUsecase) Featured(ctx context.Context, category domain.Category, limit int) ([]*domain.Listing, error) {
	if category != "" && !domain.ValidCategory(category) {
		return nil, &domain.ValidationError{Field: "category", Message: "unknown category " + string(category)}
	}
	return uc.repo.Featured(ctx, category, limit)
}

// Search runs the filter against the catalog and returns a ranked page.
func (uc *CatalogUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	uc.metrics.IncSearches()
	listings, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Search failed", zap.Error(err))
		uc.metrics.IncError("search", "repository")
		return nil, err
	}
	return listings, nil
}

func (uc *CatalogUsecase) invalidateCache(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("Cache invalidation failed", zap.Error(err), zap.String("listing_id", id))
	}
}

// listingEvent is the flat JSON payload published for lifecycle events.
func listingEvent(l *domain.Listing) map[string]interface{} {
	return map[string]interface{}{
		"listing_id": l.ID,
		"owner_id":   l.OwnerID,
		"category":   string(l.Category),
		"type":       string(l.Type),
		"title":      l.Title,
		"status":     string(l.Status),
		"verified":   l.Verified,
		"updated_at": l.UpdatedAt.Format(time.RFC3339Nano),
	}
}
