package routes

import (
	"net/http"

	"bloodlink_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Setup mounts every handler under /api/v1 plus the health probe.
func Setup(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	h.AuthHandler.RegisterRoutes(v1)
	h.FacilityHandler.RegisterRoutes(v1)
	h.DonorHandler.RegisterRoutes(v1)
	h.AdminHandler.RegisterRoutes(v1)
}
