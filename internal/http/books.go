package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/entities"
)

// BookSearcher queries the catalog by free-text query.
type BookSearcher interface {
	Search(ctx context.Context, query string) ([]entities.Book, error)
}

// TrendingSource returns the current trending list.
type TrendingSource interface {
	Get(ctx context.Context) ([]entities.Book, error)
}

type BooksController struct {
	searcher BookSearcher
	trending TrendingSource
}

func NewBooksController(searcher BookSearcher, trending TrendingSource) *BooksController {
	return &BooksController{searcher: searcher, trending: trending}
}

// Search queries the catalog.
// GET /api/books/search?q=<query>
func (bc *BooksController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	books, err := bc.searcher.Search(c.Request.Context(), query)
	if err != nil {
		respondUpstreamError(c, err, "search books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

// Trending returns the trending subject list.
// GET /api/books/trending
func (bc *BooksController) Trending(c *gin.Context) {
	books, err := bc.trending.Get(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "trending books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}
