package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/profile"
)

// ProfileController exposes the profile form over HTTP. It owns a single
// reconciler: the server mirrors one signed-in device, so profile state is
// last-write-wins just like the screen it backs.
type ProfileController struct {
	reconciler *profile.Reconciler
}

func NewProfileController(reconciler *profile.Reconciler) *ProfileController {
	return &ProfileController{reconciler: reconciler}
}

// ProfileResponse carries the form plus where it was loaded from.
type ProfileResponse struct {
	Profile profile.FormState `json:"profile"`
	Source  string            `json:"source"`
}

// Get loads the profile, preferring the remote document and falling back to
// the cached credentials.
// GET /api/profile
func (pc *ProfileController) Get(c *gin.Context) {
	source := pc.reconciler.Load(c.Request.Context())
	c.JSON(http.StatusOK, ProfileResponse{
		Profile: pc.reconciler.Form(),
		Source:  string(source),
	})
}

// Update validates the submitted form and writes it through to the remote
// document, mirroring the result into the credentials cache.
// PUT /api/profile
func (pc *ProfileController) Update(c *gin.Context) {
	var form profile.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	pc.reconciler.SetForm(form)

	if !pc.reconciler.Changed() {
		c.JSON(http.StatusOK, gin.H{
			"message": "no changes to save",
			"profile": pc.reconciler.Form(),
		})
		return
	}

	if err := pc.reconciler.Save(c.Request.Context()); err != nil {
		var verr *profile.ValidationError
		switch {
		case errors.As(err, &verr):
			respondBadRequest(c, verr.Message)
		case errors.Is(err, profile.ErrNotAuthenticated):
			respondUnauthorized(c)
		default:
			respondUpstreamError(c, err, "save profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"profile": pc.reconciler.Form(),
	})
}
