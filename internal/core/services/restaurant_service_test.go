package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type stubRestaurantRepo struct {
	fakeRestaurantRepo
	listing      []*domain.Restaurant
	listingCalls int
	byID         map[uuid.UUID]*domain.Restaurant
}

func (r *stubRestaurantRepo) GetAllWithMenu(context.Context, time.Time) ([]*domain.Restaurant, error) {
	r.listingCalls++
	return r.listing, nil
}

func (r *stubRestaurantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return r.byID[id], nil
}

type memoryCache struct {
	listings    map[string][]*domain.Restaurant
	failReads   bool
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{listings: make(map[string][]*domain.Restaurant)}
}

func (c *memoryCache) GetListing(_ context.Context, date time.Time) ([]*domain.Restaurant, bool, error) {
	if c.failReads {
		return nil, false, errors.New("cache unavailable")
	}
	listing, ok := c.listings[date.Format(time.DateOnly)]
	return listing, ok, nil
}

func (c *memoryCache) SetListing(_ context.Context, date time.Time, restaurants []*domain.Restaurant) error {
	c.listings[date.Format(time.DateOnly)] = restaurants
	return nil
}

func (c *memoryCache) InvalidateListing(_ context.Context, date time.Time) error {
	c.invalidated++
	delete(c.listings, date.Format(time.DateOnly))
	return nil
}

func TestListWithMenuCachesListing(t *testing.T) {
	repo := &stubRestaurantRepo{
		listing: []*domain.Restaurant{{ID: uuid.New(), Name: "Cached Corner"}},
	}
	cache := newMemoryCache()
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(repo, cache, &fakeClock{now: now})

	listing, err := svc.ListWithMenu(context.Background(), domain.DateOf(now))
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, 1, repo.listingCalls)

	// Second read is served from cache
	listing, err = svc.ListWithMenu(context.Background(), domain.DateOf(now))
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, 1, repo.listingCalls)
}

func TestListWithMenuToleratesCacheFailure(t *testing.T) {
	repo := &stubRestaurantRepo{
		listing: []*domain.Restaurant{{ID: uuid.New(), Name: "Resilient Ristorante"}},
	}
	cache := newMemoryCache()
	cache.failReads = true
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(repo, cache, &fakeClock{now: now})

	listing, err := svc.ListWithMenu(context.Background(), domain.DateOf(now))
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, 1, repo.listingCalls)
}

func TestListWithMenuWithoutCache(t *testing.T) {
	repo := &stubRestaurantRepo{}
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(repo, nil, &fakeClock{now: now})

	_, err := svc.ListWithMenu(context.Background(), domain.DateOf(now))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listingCalls)
}

func TestRenameInvalidatesListing(t *testing.T) {
	id := uuid.New()
	repo := &stubRestaurantRepo{
		byID: map[uuid.UUID]*domain.Restaurant{id: {ID: id, Name: "Old Name"}},
	}
	cache := newMemoryCache()
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(repo, cache, &fakeClock{now: now})

	cache.listings[domain.DateOf(now).Format(time.DateOnly)] = []*domain.Restaurant{{ID: id, Name: "Old Name"}}

	renamed, err := svc.Rename(context.Background(), id, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", renamed.Name)
	assert.Equal(t, 1, cache.invalidated)
	assert.Empty(t, cache.listings)
}

func TestRenameUnknownRestaurant(t *testing.T) {
	repo := &stubRestaurantRepo{byID: map[uuid.UUID]*domain.Restaurant{}}
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(repo, nil, &fakeClock{now: now})

	_, err := svc.Rename(context.Background(), uuid.New(), "New Name")
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestCreateRequiresName(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	svc := NewRestaurantService(&stubRestaurantRepo{}, nil, &fakeClock{now: now})

	_, err := svc.Create(context.Background(), ports.CreateRestaurantInput{})
	assert.Error(t, err)
}
