// Package localstore provides the device-local key-value storage that backs
// the credential cache, the theme preference and the favorites mirror.
//
// # Usage
//
//	store, err := localstore.Open("./mybooks.db")
//	err = store.Set(entities.StorageKeyTheme, "dark")
package localstore

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mybooks/server/internal/entities"
)

// Store is a single logical key-value namespace over SQLite. Each concern uses
// a distinct key, so writers cannot collide across keys; the last Set to
// complete wins within one.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the local database at the given path and migrates
// the key-value table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&entities.LocalEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an already opened GORM handle. Used by tests and by callers
// sharing one database file.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key. The second return value is false
// when no entry exists.
func (s *Store) Get(key string) (string, bool, error) {
	var entry entities.LocalEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set creates or overwrites the value under key.
func (s *Store) Set(key, value string) error {
	var entry entities.LocalEntry
	result := s.db.Where("key = ?", key).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		entry = entities.LocalEntry{
			Key:   key,
			Value: value,
		}
		return s.db.Create(&entry).Error
	} else if result.Error != nil {
		return result.Error
	}

	entry.Value = value
	return s.db.Save(&entry).Error
}

// Remove deletes the entry under key. Removing a missing key is a no-op.
func (s *Store) Remove(key string) error {
	return s.db.Where("key = ?", key).Delete(&entities.LocalEntry{}).Error
}

// DB exposes the underlying GORM handle so the session table can share the
// same database file.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
