package usecase

import (
	"context"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

// EventPublisher publishes catalog lifecycle events. The NATS adapter
// implements it; tests substitute mocks.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

// ListingCache is a read-through cache for single-listing fetches. A miss is
// (nil, nil).
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// VerificationNotifier is told when a listing passes verification. The
// mailer adapter implements it.
type VerificationNotifier interface {
	ListingVerified(ctx context.Context, listing *domain.Listing) error
}

// Storage persists uploaded image bytes and returns a public URL.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
