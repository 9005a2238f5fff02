package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/catalog-service/internal/adapter/repository/memory"
	"github.com/unimarket/catalog-service/internal/catalog/domain"
	"github.com/unimarket/catalog-service/internal/platform/logger"
)

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *recordingNotifier) ListingVerified(ctx context.Context, listing *domain.Listing) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, listing.Title)
	return nil
}

func (n *recordingNotifier) notified() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.titles...)
}

// mapCache is an in-memory ListingCache with the same miss contract as the
// Redis adapter: a miss is (nil, nil).
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Listing
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*domain.Listing)}
}

func (c *mapCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[id].Clone(), nil
}

func (c *mapCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[listing.ID] = listing.Clone()
	return nil
}

func (c *mapCache) DeleteListing(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func seedPending(t *testing.T, repo *memory.ListingRepository, id string) *domain.Listing {
	t.Helper()
	listing, err := domain.NewListing(placeInput())
	require.NoError(t, err)
	listing.ID = id
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	require.NoError(t, repo.Create(context.Background(), listing))
	return listing
}

func TestVerifier_PromotesPendingListing(t *testing.T) {
	repo := memory.NewListingRepository()
	events := &recordingPublisher{}
	notifier := &recordingNotifier{}
	v := NewVerifier(repo, nil, events, notifier, nil, logger.NewNop(), 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v.Start(ctx)
	defer v.Stop()

	seedPending(t, repo, "l1")
	v.Enqueue("l1")

	require.Eventually(t, func() bool {
		got, err := repo.FindByID(context.Background(), "l1")
		return err == nil && got.Status == domain.StatusActive && got.Verified
	}, 2*time.Second, 5*time.Millisecond)

	assert.Contains(t, events.published(), "listing.verified")
	assert.Eventually(t, func() bool {
		return len(notifier.notified()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestVerifier_DeletedListingStaysDeleted(t *testing.T) {
	repo := memory.NewListingRepository()
	events := &recordingPublisher{}
	v := NewVerifier(repo, nil, events, nil, nil, logger.NewNop(), 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v.Start(ctx)

	seedPending(t, repo, "l2")
	v.Enqueue("l2")

	// Delete while the verification is still waiting out its delay.
	removed, err := repo.Delete(context.Background(), "l2")
	require.NoError(t, err)
	require.True(t, removed)

	v.Stop() // waits for in-flight work to finish

	_, err = repo.FindByID(context.Background(), "l2")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.NotContains(t, events.published(), "listing.verified")
	assert.Equal(t, 0, repo.Len())
}

func TestVerifier_FailedCheckKeepsListingPending(t *testing.T) {
	repo := memory.NewListingRepository()
	check := func(*domain.Listing) bool { return false }
	v := NewVerifier(repo, nil, nil, nil, nil, logger.NewNop(), 5*time.Millisecond, check)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v.Start(ctx)

	seedPending(t, repo, "l3")
	v.Enqueue("l3")
	time.Sleep(50 * time.Millisecond)
	v.Stop()

	got, err := repo.FindByID(context.Background(), "l3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.False(t, got.Verified)
}

func TestVerifier_InvalidatesCachedPendingSnapshot(t *testing.T) {
	repo := memory.NewListingRepository()
	cache := newMapCache()
	v := NewVerifier(repo, cache, nil, nil, nil, logger.NewNop(), 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v.Start(ctx)
	defer v.Stop()

	uc := NewCatalogUsecase(repo, cache, nil, v, nil, logger.NewNop())

	created, err := uc.CreateListing(ctx, placeInput())
	require.NoError(t, err)

	// An immediate fetch caches the pending snapshot.
	got, err := uc.GetListing(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)

	// Wait for the promotion to land in the store.
	require.Eventually(t, func() bool {
		l, err := repo.FindByID(ctx, created.ID)
		return err == nil && l.Status == domain.StatusActive && l.Verified
	}, 2*time.Second, 10*time.Millisecond)

	// The promotion must push past the cached pending copy: a re-fetch
	// through the same cache shows active and verified once the stale entry
	// is dropped.
	require.Eventually(t, func() bool {
		l, err := uc.GetListing(ctx, created.ID)
		return err == nil && l.Status == domain.StatusActive && l.Verified
	}, 2*time.Second, 10*time.Millisecond)
}

func TestVerifier_EnqueueDuringStopStaysPending(t *testing.T) {
	repo := memory.NewListingRepository()
	v := NewVerifier(repo, nil, nil, nil, nil, logger.NewNop(), time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v.Start(ctx)
	v.Stop()

	// A create racing shutdown must not panic; its listing just stays
	// pending until the next run.
	require.NotPanics(t, func() { v.Enqueue("late-arrival") })
}

func TestVerifier_StopWithoutStart(t *testing.T) {
	repo := memory.NewListingRepository()
	v := NewVerifier(repo, nil, nil, nil, nil, logger.NewNop(), time.Millisecond, nil)
	v.Stop() // must not hang or panic
}
