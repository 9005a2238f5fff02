package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// PhotoUsecase uploads listing images to object storage and appends the
// resulting URL to the listing's image list.
type PhotoUsecase struct {
	storage Storage
	repo    domain.ListingRepository
	cache   ListingCache // optional
	logger  *logger.Logger
}

func NewPhotoUsecase(storage Storage, repo domain.ListingRepository, cache ListingCache, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{
		storage: storage,
		repo:    repo,
		cache:   cache,
		logger:  log.Named("PhotoUsecase"),
	}
}

func (uc *PhotoUsecase) UploadPhoto(ctx context.Context, listingID, fileName string, data []byte) (string, error) {
	// Confirm the listing exists before paying for the upload.
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Warn("Photo upload for unknown listing", zap.String("listing_id", listingID))
		}
		return "", err
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Photo upload to storage failed", zap.Error(err), zap.String("listing_id", listingID))
		return "", err
	}

	listing.Images = append(listing.Images, url)
	listing.Touch(time.Now())
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to attach photo to listing", zap.Error(err), zap.String("listing_id", listingID))
		return "", err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
			uc.logger.Warn("Cache invalidation failed after photo upload", zap.Error(err), zap.String("listing_id", listingID))
		}
	}

	uc.logger.Info("Photo attached to listing", zap.String("listing_id", listingID), zap.String("url", url))
	return url, nil
}
