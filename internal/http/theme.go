package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/theme"
)

// ThemeController exposes the persisted theme preference.
type ThemeController struct {
	preference *theme.Preference
}

func NewThemeController(preference *theme.Preference) *ThemeController {
	return &ThemeController{preference: preference}
}

// Get returns the active theme.
// GET /api/theme
func (tc *ThemeController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": tc.preference.Get()})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// Set stores the theme preference.
// PUT /api/theme
func (tc *ThemeController) Set(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := tc.preference.Set(req.Theme); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": tc.preference.Get()})
}
