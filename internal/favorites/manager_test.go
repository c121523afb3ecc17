package favorites

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks/server/internal/entities"
)

type memoryStorage struct {
	values map[string]string
	sets   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.sets++
	m.values[key] = value
	return nil
}

type faultyStorage struct{}

func (faultyStorage) Get(string) (string, bool, error) { return "", false, nil }
func (faultyStorage) Set(string, string) error         { return errors.New("disk fault") }

func book(id, title string) entities.Book {
	return entities.Book{ID: id, Title: title, Author: "Author"}
}

func TestManager_Toggle_AddsThenRemoves(t *testing.T) {
	m := NewManager(newMemoryStorage())

	added := m.Toggle(book("/works/OL1W", "Dune"))
	assert.True(t, added)
	assert.True(t, m.Contains("/works/OL1W"))

	added = m.Toggle(book("/works/OL1W", "Dune"))
	assert.False(t, added)
	assert.False(t, m.Contains("/works/OL1W"))
}

func TestManager_Toggle_AddThenRemoveIsIdentity(t *testing.T) {
	m := NewManager(newMemoryStorage())
	m.Toggle(book("/works/OL1W", "Dune"))
	m.Toggle(book("/works/OL2W", "Neuromancer"))
	before := m.List()

	b := book("/works/OL3W", "Hyperion")
	m.Toggle(b)
	m.Toggle(b)

	assert.Equal(t, before, m.List())
}

func TestManager_Toggle_PreservesInsertionOrder(t *testing.T) {
	m := NewManager(newMemoryStorage())
	m.Toggle(book("/works/OL1W", "Dune"))
	m.Toggle(book("/works/OL2W", "Neuromancer"))
	m.Toggle(book("/works/OL3W", "Hyperion"))

	// Removing the middle entry keeps the remaining order.
	m.Toggle(book("/works/OL2W", "Neuromancer"))

	shelf := m.List()
	require.Len(t, shelf, 2)
	assert.Equal(t, "/works/OL1W", shelf[0].ID)
	assert.Equal(t, "/works/OL3W", shelf[1].ID)
}

func TestManager_Toggle_PersistsEveryMutation(t *testing.T) {
	store := newMemoryStorage()
	m := NewManager(store)

	m.Toggle(book("/works/OL1W", "Dune"))
	m.Toggle(book("/works/OL2W", "Neuromancer"))
	assert.Equal(t, 2, store.sets)

	var mirrored []entities.Book
	require.NoError(t, json.Unmarshal([]byte(store.values[entities.StorageKeyFavorites]), &mirrored))
	require.Len(t, mirrored, 2)
	assert.Equal(t, "Dune", mirrored[0].Title)
}

func TestManager_PersistenceFailureKeepsInMemoryState(t *testing.T) {
	m := NewManager(faultyStorage{})

	added := m.Toggle(book("/works/OL1W", "Dune"))
	assert.True(t, added)
	assert.True(t, m.Contains("/works/OL1W"))
}

func TestManager_HydratesFromStorage(t *testing.T) {
	store := newMemoryStorage()
	stored, err := json.Marshal([]entities.Book{book("/works/OL1W", "Dune")})
	require.NoError(t, err)
	require.NoError(t, store.Set(entities.StorageKeyFavorites, string(stored)))
	store.sets = 0

	m := NewManager(store)
	shelf := m.List()
	require.Len(t, shelf, 1)
	assert.Equal(t, "Dune", shelf[0].Title)
}

func TestManager_MalformedBlobReadsAsEmptyShelf(t *testing.T) {
	store := newMemoryStorage()
	require.NoError(t, store.Set(entities.StorageKeyFavorites, "[broken"))

	m := NewManager(store)
	assert.Empty(t, m.List())
}
