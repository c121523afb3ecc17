package entities

import (
	"time"
)

// LocalEntry is a single record in the device-local key-value store. Each
// entry holds one JSON-serialized blob under a fixed key.
type LocalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LocalEntry) TableName() string {
	return "local_entries"
}

// Known storage keys
const (
	// StorageKeyCredentials holds the CachedCredentials blob.
	StorageKeyCredentials = "user_creds"

	// StorageKeyTheme holds the theme preference ("light" or "dark").
	StorageKeyTheme = "app_theme"

	// StorageKeyFavorites holds the favorite-book array.
	StorageKeyFavorites = "favorites"
)
