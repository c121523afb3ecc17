package trending

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks/server/internal/entities"
)

type fakeLister struct {
	books []entities.Book
	err   error
	calls int
}

func (f *fakeLister) Trending(context.Context) ([]entities.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.books, nil
}

func TestCache_Get_FetchesLiveWhenCold(t *testing.T) {
	lister := &fakeLister{books: []entities.Book{{ID: "/works/OL1W", Title: "Dune"}}}
	cache := NewCache(lister)

	books, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 1, lister.calls)
	assert.False(t, cache.FetchedAt().IsZero())
}

func TestCache_Get_ServesSnapshotWithoutRefetch(t *testing.T) {
	lister := &fakeLister{books: []entities.Book{{ID: "/works/OL1W", Title: "Dune"}}}
	cache := NewCache(lister)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, lister.calls)
}

func TestCache_Get_ColdFetchFailureSurfaces(t *testing.T) {
	lister := &fakeLister{err: errors.New("network down")}
	cache := NewCache(lister)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestCache_Refresh_ReplacesSnapshot(t *testing.T) {
	lister := &fakeLister{books: []entities.Book{{ID: "/works/OL1W", Title: "Dune"}}}
	cache := NewCache(lister)

	require.NoError(t, cache.Refresh(context.Background()))

	lister.books = []entities.Book{{ID: "/works/OL2W", Title: "Neuromancer"}}
	require.NoError(t, cache.Refresh(context.Background()))

	books, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Neuromancer", books[0].Title)
}

func TestCache_StartRejectsBadSchedule(t *testing.T) {
	cache := NewCache(&fakeLister{})
	defer cache.Stop()

	err := cache.Start(context.Background(), "not a schedule")
	assert.Error(t, err)
}
