// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports API liveness and database connectivity.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HealthController serves the unauthenticated /health probe.
type HealthController struct {
	dbHealthChecker func() bool
}

// NewHealthController creates the health controller. dbHealthChecker
// may be nil when no database probe is wired.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{dbHealthChecker: dbHealthChecker}
}

// Check handles GET /health.
func (h *HealthController) Check(c *gin.Context) {
	db := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		db = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  db,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
