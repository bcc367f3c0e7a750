package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes sets up the health and root endpoints.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/health", healthCheck)
	r.GET("/", home)
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the service is up.
// @Tags home
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "boarding house management backend"})
}
