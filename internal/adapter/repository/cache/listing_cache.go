package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
)

const (
	keyPrefix  = "listing:"
	defaultTTL = 1 * time.Hour
)

// ListingCache is a read-through Redis cache for single-listing fetches.
// A miss is (nil, nil); cache failures are surfaced to the caller, which
// treats them as misses.
type ListingCache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewListingCache(addr string, log *logger.Logger) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	log.Info("Listing cache: connected to Redis", zap.String("addr", addr))
	return &ListingCache{client: client, logger: log.Named("ListingCache")}, nil
}

func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		c.logger.Warn("Listing cache: corrupt entry, evicting", zap.String("listing_id", id), zap.Error(err))
		c.client.Del(ctx, keyPrefix+id)
		return nil, nil
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+listing.ID, data, defaultTTL).Err()
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, keyPrefix+id).Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}
