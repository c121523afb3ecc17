package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mybooks/server/internal/localstore"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	store   *localstore.Store
	version string
}

func NewHealthController(store *localstore.Store, version string) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check local storage connectivity
	if h.store != nil {
		sqlDB, err := h.store.DB().DB()
		if err != nil {
			checks["localstore"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["localstore"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["localstore"] = "ok"
		}
	} else {
		checks["localstore"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
