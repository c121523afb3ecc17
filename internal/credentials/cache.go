// Package credentials persists the most recently known user profile for two
// purposes: startup routing (logged-in vs logged-out) and offline profile
// display when the remote store is unreachable.
//
// Storage faults never surface to callers: a failed save or clear is logged
// and treated as a no-op, and an unreadable or malformed blob reads as absent
// (fail open to the logged-out interpretation). The cache is always
// re-derivable from the remote store when a session exists.
package credentials

import (
	"encoding/json"
	"log"

	"github.com/mybooks/server/internal/entities"
)

// Storage is the local key-value substrate the cache persists to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Cache stores the last known user credentials under a fixed key.
type Cache struct {
	store Storage
}

// NewCache creates a credential cache over the given storage.
func NewCache(store Storage) *Cache {
	return &Cache{store: store}
}

// Save overwrites the cached record in full. A storage fault is logged and
// swallowed; after a successful save an immediately following Load returns an
// equivalent record.
func (c *Cache) Save(creds entities.CachedCredentials) {
	data, err := json.Marshal(creds)
	if err != nil {
		log.Printf("Error saving credentials: %v", err)
		return
	}
	if err := c.store.Set(entities.StorageKeyCredentials, string(data)); err != nil {
		log.Printf("Error saving credentials: %v", err)
	}
}

// Load returns the last saved record, or nil if none exists or the stored
// value fails to parse.
func (c *Cache) Load() *entities.CachedCredentials {
	value, ok, err := c.store.Get(entities.StorageKeyCredentials)
	if err != nil {
		log.Printf("Error retrieving credentials: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var creds entities.CachedCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		// A malformed blob reads as absent, not as a distinct error.
		log.Printf("Error retrieving credentials: %v", err)
		return nil
	}
	return &creds
}

// Clear removes the cached record entirely. Clearing an already-empty cache
// is a no-op success.
func (c *Cache) Clear() {
	if err := c.store.Remove(entities.StorageKeyCredentials); err != nil {
		log.Printf("Error clearing credentials: %v", err)
	}
}
