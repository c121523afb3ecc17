package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks/server/internal/entities"
)

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

type faultyStorage struct{}

func (faultyStorage) Get(string) (string, bool, error) { return "", false, errors.New("disk fault") }
func (faultyStorage) Set(string, string) error         { return errors.New("disk fault") }

func TestPreference_DefaultsToLight(t *testing.T) {
	p := NewPreference(newMemoryStorage())
	assert.Equal(t, Light, p.Get())
}

func TestPreference_SetAndGet(t *testing.T) {
	p := NewPreference(newMemoryStorage())

	require.NoError(t, p.Set(Dark))
	assert.Equal(t, Dark, p.Get())
}

func TestPreference_RejectsUnknownValue(t *testing.T) {
	p := NewPreference(newMemoryStorage())
	assert.Error(t, p.Set("sepia"))
}

func TestPreference_UnknownStoredValueReadsAsLight(t *testing.T) {
	store := newMemoryStorage()
	require.NoError(t, store.Set(entities.StorageKeyTheme, "sepia"))

	p := NewPreference(store)
	assert.Equal(t, Light, p.Get())
}

func TestPreference_StorageFaultsAreSilent(t *testing.T) {
	p := NewPreference(faultyStorage{})

	assert.NoError(t, p.Set(Dark))
	assert.Equal(t, Light, p.Get())
}
