package domain

import "context"

// ListingRepository owns the authoritative listing collection. Implementations
// must make every mutation appear atomic to concurrent readers, and FindByID /
// Update must report a missing id with ErrListingNotFound.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	// Delete is idempotent: removing an absent id reports false, not an error.
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	// FindByOwner returns matches in unspecified order.
	FindByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, error)
	// Featured returns up to limit active+verified listings, optionally
	// restricted to one category, ranked by rating then recency.
	Featured(ctx context.Context, category Category, limit int) ([]*Listing, error)
}
