package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Assistant endpoints
	ChatHandler           gin.HandlerFunc
	SMSWebhookHandler     gin.HandlerFunc
	VoiceTurnHandler      gin.HandlerFunc
	SessionHistoryHandler gin.HandlerFunc

	// Capacity endpoints
	GetCapacityHandler gin.HandlerFunc
}
