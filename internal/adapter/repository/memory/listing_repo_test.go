package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

func storedPlace(id string, mutate func(*domain.Listing)) *domain.Listing {
	now := time.Now()
	l := &domain.Listing{
		ID:        id,
		Title:     "listing " + id,
		Category:  domain.CategoryPlaces,
		Type:      domain.TypeHotel,
		OwnerID:   "owner-1",
		Status:    domain.StatusActive,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
		Place:     &domain.PlaceDetails{Capacity: 2},
	}
	if mutate != nil {
		mutate(l)
	}
	return l
}

func intp(v int) *int { return &v }

func TestCreateAndFindByID(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	l := storedPlace("id-1", nil)
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.FindByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "listing id-1", got.Title)

	// Returned values are copies: mutating one must not leak into the store.
	got.Title = "mutated"
	again, err := repo.FindByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "listing id-1", again.Title)
}

func TestCreate_DuplicateIDRejected(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedPlace("dup", nil)))
	assert.Error(t, repo.Create(ctx, storedPlace("dup", nil)))
}

func TestFindByID_Missing(t *testing.T) {
	repo := NewListingRepository()
	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestUpdate_MissingIsNotFound(t *testing.T) {
	repo := NewListingRepository()
	err := repo.Update(context.Background(), storedPlace("ghost", nil))
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedPlace("id-1", nil)))

	removed, err := repo.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, removed, "second delete reports nothing removed")

	_, err = repo.FindByID(ctx, "id-1")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestFindByOwner(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedPlace("a", nil)))
	require.NoError(t, repo.Create(ctx, storedPlace("b", nil)))
	require.NoError(t, repo.Create(ctx, storedPlace("c", func(l *domain.Listing) { l.OwnerID = "other" })))

	mine, err := repo.FindByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := repo.FindByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByFilter_RankingAndPagination(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, repo.Create(ctx, storedPlace(fmt.Sprintf("id-%d", i), func(l *domain.Listing) {
			l.Rating = float64(i) // id-4 ranks first
			l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		})))
	}

	first, err := repo.FindByFilter(ctx, domain.Filter{Limit: intp(2), Offset: 0})
	require.NoError(t, err)
	second, err := repo.FindByFilter(ctx, domain.Filter{Limit: intp(2), Offset: 2})
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, "id-4", first[0].ID)
	assert.Equal(t, "id-3", first[1].ID)
	assert.Equal(t, "id-2", second[0].ID)
	assert.Equal(t, "id-1", second[1].ID)

	// No overlap, no gap across the two pages.
	seen := map[string]bool{}
	for _, l := range append(first, second...) {
		assert.False(t, seen[l.ID])
		seen[l.ID] = true
	}
}

func TestFindByFilter_EmptyCases(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	got, err := repo.FindByFilter(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got, "empty catalog is an empty result, not an error")

	require.NoError(t, repo.Create(ctx, storedPlace("id-1", nil)))

	got, err = repo.FindByFilter(ctx, domain.Filter{Limit: intp(0)})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FindByFilter(ctx, domain.Filter{Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FindByFilter(ctx, domain.Filter{Status: domain.StatusSuspended})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeatured(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.Create(ctx, storedPlace("active-high", func(l *domain.Listing) {
		l.Rating = 4.8
		l.CreatedAt = base.Add(-time.Hour)
	})))
	require.NoError(t, repo.Create(ctx, storedPlace("active-low", func(l *domain.Listing) {
		l.Rating = 3.1
	})))
	require.NoError(t, repo.Create(ctx, storedPlace("pending", func(l *domain.Listing) {
		l.Rating = 5.0
		l.Status = domain.StatusPending
		l.Verified = false
	})))
	require.NoError(t, repo.Create(ctx, storedPlace("person", func(l *domain.Listing) {
		l.Category = domain.CategoryPeople
		l.Type = domain.TypeChef
		l.Place = nil
		l.People = &domain.PeopleDetails{
			Availability: domain.WeeklyAvailability{Days: []string{"mon"}, Hours: "9-5"},
		}
		l.Rating = 4.9
	})))

	all, err := repo.Featured(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3, "pending/unverified never features")
	assert.Equal(t, "person", all[0].ID)
	assert.Equal(t, "active-high", all[1].ID)

	places, err := repo.Featured(ctx, domain.CategoryPlaces, 1)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "active-high", places[0].ID)
}

func TestConcurrentMutationsAndReads(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			assert.NoError(t, repo.Create(ctx, storedPlace(id, nil)))
			if l, err := repo.FindByID(ctx, id); err == nil {
				l.Title = "updated"
				_ = repo.Update(ctx, l)
			}
			_, _ = repo.FindByFilter(ctx, domain.Filter{Tags: []string{"x"}})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
}

func TestUniqueIDsAcrossManyCreates(t *testing.T) {
	// The repo enforces id uniqueness; exercised here with the same
	// generator shape (distinct ids) the usecase produces.
	repo := NewListingRepository()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		require.NoError(t, repo.Create(ctx, storedPlace(fmt.Sprintf("id-%d", i), nil)))
	}
	assert.Equal(t, 100, repo.Len())
}
