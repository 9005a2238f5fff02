package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	natsadapter "github.com/unimarket/catalog-service/internal/adapter/messaging/nats"
	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
	"github.com/unimarket/catalog-service/internal/platform/metrics"
)

// CheckFunc decides whether a pending listing passes verification. The
// default passes unconditionally; real identity or licensing checks plug in
// here without touching the catalog contract.
type CheckFunc func(listing *domain.Listing) bool

// Verifier is the background workflow that promotes pending listings to
// active and verified. Each enqueued listing is processed once, after a fixed
// delay, on a worker goroutine; the caller of CreateListing is never blocked.
//
// If the listing was deleted while verification was in flight the completion
// is a silent no-op, so a deleted entry can never be resurrected. A failing
// check leaves the listing pending.
type Verifier struct {
	repo     domain.ListingRepository
	cache    ListingCache // optional
	events   EventPublisher
	notifier VerificationNotifier // optional
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
	delay    time.Duration
	check    CheckFunc

	queue chan string
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool

	startOnce sync.Once
	stopOnce  sync.Once
}

const verifierQueueSize = 256

func NewVerifier(
	repo domain.ListingRepository,
	cache ListingCache,
	events EventPublisher,
	notifier VerificationNotifier,
	m *metrics.MetricsManager,
	log *logger.Logger,
	delay time.Duration,
	check CheckFunc,
) *Verifier {
	if events == nil {
		events = NopPublisher{}
	}
	if check == nil {
		check = func(*domain.Listing) bool { return true }
	}
	return &Verifier{
		repo:     repo,
		cache:    cache,
		events:   events,
		notifier: notifier,
		metrics:  m,
		logger:   log.Named("Verifier"),
		delay:    delay,
		check:    check,
		queue:    make(chan string, verifierQueueSize),
	}
}

// Start launches the worker. The context bounds the worker's lifetime
// together with Stop.
func (v *Verifier) Start(ctx context.Context) {
	v.startOnce.Do(func() {
		v.wg.Add(1)
		go v.run(ctx)
	})
}

// Enqueue schedules a listing for verification. It never blocks; if the
// queue is full the listing stays pending and the drop is logged, which is
// observable to callers as a listing that needs re-verification. Enqueue is
// safe against a concurrent Stop: a listing arriving during shutdown stays
// pending instead of panicking on the closed queue.
func (v *Verifier) Enqueue(listingID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		v.logger.Warn("Verifier stopped, listing stays pending",
			zap.String("listing_id", listingID))
		return
	}
	select {
	case v.queue <- listingID:
	default:
		v.logger.Warn("Verification queue full, listing stays pending",
			zap.String("listing_id", listingID))
	}
}

// Stop drains the queue and waits for in-flight work to finish.
func (v *Verifier) Stop() {
	v.stopOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		close(v.queue)
		v.mu.Unlock()
	})
	v.wg.Wait()
}

func (v *Verifier) run(ctx context.Context) {
	defer v.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-v.queue:
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(v.delay):
			}
			v.process(ctx, id)
		}
	}
}

func (v *Verifier) process(ctx context.Context, id string) {
	listing, err := v.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrListingNotFound) {
		// Deleted before verification completed.
		v.logger.Debug("Listing vanished before verification, skipping", zap.String("listing_id", id))
		return
	}
	if err != nil {
		v.logger.Error("Verification lookup failed", zap.Error(err), zap.String("listing_id", id))
		return
	}

	if !v.check(listing) {
		v.logger.Warn("Verification check failed, listing stays pending", zap.String("listing_id", id))
		v.metrics.IncError("verify", "check_failed")
		return
	}

	listing.Status = domain.StatusActive
	listing.Verified = true
	listing.Touch(time.Now())

	err = v.repo.Update(ctx, listing)
	if errors.Is(err, domain.ErrListingNotFound) {
		// Deleted between lookup and update; do not resurrect it.
		v.logger.Debug("Listing deleted mid-verification, skipping", zap.String("listing_id", id))
		return
	}
	if err != nil {
		v.logger.Error("Failed to persist verification result", zap.Error(err), zap.String("listing_id", id))
		return
	}
	v.metrics.IncVerified()

	// Drop any cached pending snapshot so re-fetches see the promotion.
	if v.cache != nil {
		if err := v.cache.DeleteListing(ctx, id); err != nil {
			v.logger.Warn("Cache invalidation failed after verification", zap.Error(err), zap.String("listing_id", id))
		}
	}

	if err := v.events.Publish(ctx, natsadapter.SubjectListingVerified, map[string]interface{}{
		"listing_id": listing.ID,
		"owner_id":   listing.OwnerID,
		"status":     string(listing.Status),
	}); err != nil {
		v.logger.Warn("Failed to publish listing.verified event", zap.Error(err), zap.String("listing_id", id))
	}

	if v.notifier != nil {
		if err := v.notifier.ListingVerified(ctx, listing); err != nil {
			v.logger.Warn("Verification notification failed", zap.Error(err), zap.String("listing_id", id))
		}
	}

	v.logger.Info("Listing verified", zap.String("listing_id", id))
}
