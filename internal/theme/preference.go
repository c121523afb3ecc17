// Package theme persists the light/dark theme preference in the local store.
package theme

import (
	"fmt"
	"log"

	"github.com/mybooks/server/internal/entities"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Storage is the local key-value substrate the preference persists to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Preference stores the theme choice under a fixed key, defaulting to light
// when nothing valid is stored.
type Preference struct {
	store Storage
}

func NewPreference(store Storage) *Preference {
	return &Preference{store: store}
}

// Get returns the stored theme, or Light on absence or any storage fault.
func (p *Preference) Get() string {
	value, ok, err := p.store.Get(entities.StorageKeyTheme)
	if err != nil {
		log.Printf("Error retrieving theme: %v", err)
		return Light
	}
	if !ok || (value != Light && value != Dark) {
		return Light
	}
	return value
}

// Set persists the theme choice. An unknown value is rejected; a storage
// fault is logged and swallowed.
func (p *Preference) Set(value string) error {
	if value != Light && value != Dark {
		return fmt.Errorf("unknown theme %q", value)
	}
	if err := p.store.Set(entities.StorageKeyTheme, value); err != nil {
		log.Printf("Error saving theme: %v", err)
	}
	return nil
}
