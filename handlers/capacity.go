package handlers

import (
	"net/http"

	"fieldassist/services/capacity"

	"github.com/gin-gonic/gin"
)

// CapacityHandler serves the capacity snapshot to page widgets.
type CapacityHandler struct {
	Engine *capacity.Engine
}

func NewCapacityHandler(engine *capacity.Engine) *CapacityHandler {
	return &CapacityHandler{Engine: engine}
}

// GetCapacityHandler returns the current day's snapshot. The engine absorbs
// upstream failures, so this endpoint always answers 200.
func (h *CapacityHandler) GetCapacityHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Snapshot(c.Request.Context()))
}
