package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks/server/internal/entities"
	"github.com/mybooks/server/internal/favorites"
)

type memStorage struct {
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (m *memStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStorage) Remove(key string) error {
	delete(m.values, key)
	return nil
}

func newFavoritesRouter() (*gin.Engine, *memStorage) {
	gin.SetMode(gin.TestMode)
	storage := newMemStorage()
	fc := NewFavoritesController(favorites.NewManager(storage))
	router := gin.New()
	router.GET("/api/favorites", fc.List)
	router.POST("/api/favorites/toggle", fc.Toggle)
	return router, storage
}

func toggleBook(router *gin.Engine, book entities.Book) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(book)
	req := httptest.NewRequest(http.MethodPost, "/api/favorites/toggle", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFavoritesToggleAddsAndRemoves(t *testing.T) {
	router, _ := newFavoritesRouter()
	book := entities.Book{ID: "/works/OL1W", Title: "Dune", Author: "Frank Herbert"}

	w := toggleBook(router, book)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Favorite  bool            `json:"favorite"`
		Favorites []entities.Book `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Favorite)
	require.Len(t, resp.Favorites, 1)

	w = toggleBook(router, book)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Favorite)
	assert.Empty(t, resp.Favorites)
}

func TestFavoritesToggleRequiresID(t *testing.T) {
	router, _ := newFavoritesRouter()

	w := toggleBook(router, entities.Book{Title: "No ID"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesListReturnsPersistedBooks(t *testing.T) {
	router, storage := newFavoritesRouter()
	storage.values[entities.StorageKeyFavorites] = `[{"id":"/works/OL2W","title":"Hyperion","author":"Dan Simmons"}]`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Favorites []entities.Book `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, "Hyperion", resp.Favorites[0].Title)
}
