package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-activity-backend/internal/catalog"
)

// GetEquipment returns the fixed equipment catalog.
func (h *Handler) GetEquipment(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"equipment": catalog.Names()})
}
