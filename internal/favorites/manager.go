// Package favorites maintains the user's favorite-book shelf: an ordered
// in-memory sequence mirrored to the local store on every mutation. The shelf
// is locally owned and never pushed to the remote store.
package favorites

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/mybooks/server/internal/entities"
)

// Storage is the local key-value substrate the shelf is mirrored to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Manager owns the favorites sequence. Insertion order is user action order;
// add and remove are symmetric over the book ID, so no duplicate IDs are
// introduced.
type Manager struct {
	mu       sync.Mutex
	store    Storage
	books    []entities.Book
	hydrated bool
}

// NewManager creates a favorites manager over the given storage. The shelf is
// hydrated from storage lazily, at first use.
func NewManager(store Storage) *Manager {
	return &Manager{store: store}
}

// List returns a copy of the current shelf in insertion order.
func (m *Manager) List() []entities.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrateLocked()

	out := make([]entities.Book, len(m.books))
	copy(out, m.books)
	return out
}

// Contains reports whether a book with the given ID is on the shelf.
func (m *Manager) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrateLocked()

	for _, b := range m.books {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Toggle flips the membership of book on the shelf by ID equality and mirrors
// the updated sequence to storage. The in-memory update is applied first,
// optimistically; a persistence failure is logged and does not revert it.
// Returns true when the net effect was an addition.
func (m *Manager) Toggle(book entities.Book) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrateLocked()

	added := true
	for i, b := range m.books {
		if b.ID == book.ID {
			m.books = append(m.books[:i], m.books[i+1:]...)
			added = false
			break
		}
	}
	if added {
		m.books = append(m.books, book)
	}

	m.persistLocked()
	return added
}

// hydrateLocked loads the shelf from storage on first use. A missing or
// malformed blob reads as an empty shelf.
func (m *Manager) hydrateLocked() {
	if m.hydrated {
		return
	}
	m.hydrated = true

	value, ok, err := m.store.Get(entities.StorageKeyFavorites)
	if err != nil {
		log.Printf("Error loading favorites: %v", err)
		return
	}
	if !ok {
		return
	}

	var books []entities.Book
	if err := json.Unmarshal([]byte(value), &books); err != nil {
		log.Printf("Error loading favorites: %v", err)
		return
	}
	m.books = books
}

func (m *Manager) persistLocked() {
	data, err := json.Marshal(m.books)
	if err != nil {
		log.Printf("Error saving favorites: %v", err)
		return
	}
	if err := m.store.Set(entities.StorageKeyFavorites, string(data)); err != nil {
		log.Printf("Error saving favorites: %v", err)
	}
}
