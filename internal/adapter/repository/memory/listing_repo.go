package memory

import (
	"context"
	"sync"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

// ListingRepository is the in-memory implementation of
// domain.ListingRepository. A single RWMutex orders mutations; every value
// crossing the boundary is deep-copied, so readers can never observe a
// partially applied mutation or alias stored state.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: make(map[string]*domain.Listing)}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[listing.ID]; exists {
		return domain.ErrRepository
	}
	r.listings[listing.ID] = listing.Clone()
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[listing.ID]; !exists {
		return domain.ErrListingNotFound
	}
	r.listings[listing.ID] = listing.Clone()
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[id]; !exists {
		return false, nil
	}
	delete(r.listings, id)
	return true, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, exists := r.listings[id]
	if !exists {
		return nil, domain.ErrListingNotFound
	}
	return l.Clone(), nil
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*domain.Listing{}
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			result = append(result, l.Clone())
		}
	}
	return result, nil
}

// FindByFilter is a full linear scan with an in-memory sort, which is the
// intended scale for this store. Index-backed search belongs to a different
// implementation.
func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	limit := filter.PageSize()
	if limit == 0 {
		return []*domain.Listing{}, nil
	}

	r.mu.RLock()
	matched := make([]*domain.Listing, 0)
	for _, l := range r.listings {
		if filter.Matches(l) {
			matched = append(matched, l.Clone())
		}
	}
	r.mu.RUnlock()

	domain.Rank(matched)
	return domain.Page(matched, limit, filter.Offset), nil
}

func (r *ListingRepository) Featured(ctx context.Context, category domain.Category, limit int) ([]*domain.Listing, error) {
	if limit <= 0 {
		limit = domain.DefaultFeaturedLimit
	}

	r.mu.RLock()
	matched := make([]*domain.Listing, 0)
	for _, l := range r.listings {
		if l.Status != domain.StatusActive || !l.Verified {
			continue
		}
		if category != "" && l.Category != category {
			continue
		}
		matched = append(matched, l.Clone())
	}
	r.mu.RUnlock()

	domain.Rank(matched)
	return domain.Page(matched, limit, 0), nil
}

// Len reports the current catalog size.
func (r *ListingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listings)
}
