package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks/server/internal/entities"
)

// memoryStorage is an in-memory Storage for tests.
type memoryStorage struct {
	values map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Remove(key string) error {
	delete(m.values, key)
	return nil
}

// faultyStorage fails every operation.
type faultyStorage struct{}

func (faultyStorage) Get(string) (string, bool, error) { return "", false, errors.New("disk fault") }
func (faultyStorage) Set(string, string) error         { return errors.New("disk fault") }
func (faultyStorage) Remove(string) error              { return errors.New("disk fault") }

func strptr(s string) *string { return &s }

func TestCache_SaveThenLoad_RoundTrips(t *testing.T) {
	cache := NewCache(newMemoryStorage())

	creds := entities.CachedCredentials{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "secret1",
		DateOfBirth: strptr("2000-01-01T00:00:00Z"),
		Gender:      strptr(entities.GenderFemale),
	}
	cache.Save(creds)

	loaded := cache.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, creds, *loaded)
}

func TestCache_Save_OverwritesInFull(t *testing.T) {
	cache := NewCache(newMemoryStorage())

	cache.Save(entities.CachedCredentials{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Gender:   strptr(entities.GenderFemale),
	})
	cache.Save(entities.CachedCredentials{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret2",
	})

	loaded := cache.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "bob", loaded.Username)
	// Not a merge: the previous record's gender must be gone.
	assert.Nil(t, loaded.Gender)
}

func TestCache_Load_AbsentWhenNeverSaved(t *testing.T) {
	cache := NewCache(newMemoryStorage())

	assert.Nil(t, cache.Load())
}

func TestCache_Load_MalformedBlobReadsAsAbsent(t *testing.T) {
	store := newMemoryStorage()
	require.NoError(t, store.Set(entities.StorageKeyCredentials, "{not json"))

	cache := NewCache(store)
	assert.Nil(t, cache.Load())
}

func TestCache_Clear(t *testing.T) {
	store := newMemoryStorage()
	cache := NewCache(store)

	cache.Save(entities.CachedCredentials{Username: "alice", Email: "a@x.com", Password: "p"})
	cache.Clear()

	assert.Nil(t, cache.Load())

	// Clearing an already-empty cache is a no-op success.
	cache.Clear()
	assert.Nil(t, cache.Load())
}

func TestCache_StorageFaultsAreSilent(t *testing.T) {
	cache := NewCache(faultyStorage{})

	// None of these may panic or surface an error.
	cache.Save(entities.CachedCredentials{Username: "alice"})
	assert.Nil(t, cache.Load())
	cache.Clear()
}

func TestCachedCredentials_Present(t *testing.T) {
	tests := []struct {
		name  string
		creds *entities.CachedCredentials
		want  bool
	}{
		{"nil record", nil, false},
		{"empty record", &entities.CachedCredentials{}, false},
		{"username only", &entities.CachedCredentials{Username: "bob"}, true},
		{"email only", &entities.CachedCredentials{Email: "bob@x.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.Present())
		})
	}
}
