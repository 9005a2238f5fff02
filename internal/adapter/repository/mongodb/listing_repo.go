package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// ListingRepository is the Mongo-backed implementation of
// domain.ListingRepository. The filter compilation mirrors the semantics of
// domain.Filter.Matches exactly: both price bounds or none, tag union,
// case-insensitive city-or-country substring.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log.Named("MongoListingRepository"),
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if _, err := r.collection.InsertOne(ctx, toDocument(listing)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate listing id %s", domain.ErrRepository, listing.ID)
		}
		return fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": listing.ID}, toDocument(listing))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var doc listingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return fromDocument(&doc), nil
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	limit := filter.PageSize()
	if limit == 0 {
		return []*domain.Listing{}, nil
	}

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.Type != "" {
		query["type"] = string(filter.Type)
	}
	if filter.Location != "" {
		pattern := regexp.QuoteMeta(filter.Location)
		query["$or"] = bson.A{
			bson.M{"location.city": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"location.country": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if pr := filter.PriceRange; pr != nil && pr.Min != nil && pr.Max != nil {
		query["pricing.amount"] = bson.M{"$gte": *pr.Min, "$lte": *pr.Max}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.Verified != nil {
		query["verified"] = *filter.Verified
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *ListingRepository) Featured(ctx context.Context, category domain.Category, limit int) ([]*domain.Listing, error) {
	if limit <= 0 {
		limit = domain.DefaultFeaturedLimit
	}
	query := bson.M{"status": string(domain.StatusActive), "verified": true}
	if category != "" {
		query["category"] = string(category)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *ListingRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Listing, error) {
	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode listing cursor", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, fromDocument(doc))
	}
	return listings, nil
}
