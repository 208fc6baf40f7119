package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetNotification returns the transient front desk message; empty once it cleared.
func (h *Handler) GetNotification(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.notices.Current()})
}
