package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/entities"
	"github.com/mybooks/server/internal/favorites"
)

// FavoritesController exposes the locally persisted favorites set.
type FavoritesController struct {
	manager *favorites.Manager
}

func NewFavoritesController(manager *favorites.Manager) *FavoritesController {
	return &FavoritesController{manager: manager}
}

// List returns all favorite books in insertion order.
// GET /api/favorites
func (fc *FavoritesController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": fc.manager.List()})
}

// Toggle flips a book's membership in the favorites set. The full book is
// submitted so a newly added favorite is rendered without a catalog lookup.
// POST /api/favorites/toggle
func (fc *FavoritesController) Toggle(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "book id is required")
		return
	}

	added := fc.manager.Toggle(book)
	c.JSON(http.StatusOK, gin.H{
		"favorite":  added,
		"favorites": fc.manager.List(),
	})
}
