package routes

import (
	"net/http"
	"time"

	"fieldassist/handlers"
	"fieldassist/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.POST("/chat", hb.ChatHandler)
		api.POST("/voice", hb.VoiceTurnHandler)

		// Protected routes (Require the session token minted on first turn)
		api.Use(middleware.SessionAuthMiddleware())
		api.GET("/session", hb.SessionHistoryHandler)
	}
}

// RegisterWebhookRoutes registers carrier-facing webhooks. These are not
// browser endpoints so they sit outside the CORS'd API group.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	hooks := r.Group("/webhooks")
	{
		hooks.POST("/sms", hb.SMSWebhookHandler)
	}
}

// RegisterCapacityRoutes registers the scheduling-capacity endpoints.
func RegisterCapacityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/capacity")
	{
		api.GET("", hb.GetCapacityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm FieldAssist"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAssistantRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterCapacityRoutes(r, hb)
	RegisterHealthRoute(r)
}
