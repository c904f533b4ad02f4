package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"transformai/handlers"
	"transformai/middleware"
)

// RegisterAppointmentRoutes registers the public booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.GET("/slots", hb.GetAvailableSlots)
		api.POST("", hb.BookAppointment)
		api.GET("/verify/:id", hb.VerifyAppointment)
		api.POST("/cancel/:id", hb.CancelByToken)

		// Protected routes (require admin token)
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.GET("", hb.ListAppointments)
		admin.DELETE("/:id", hb.CancelAppointment)
		admin.POST("/slots/refresh", hb.RefreshSlots)
	}
}

// RegisterAdminRoutes registers the admin panel endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.AdminAuthMiddleware())
		admin.GET("/conversations", hb.ListConversations)
		admin.GET("/conversations/:id/messages", hb.ConversationMessages)
	}
}

// RegisterChatRoutes registers the widget-facing endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/chat", hb.Chat)
}

// RegisterHealthRoute registers the health check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The widget is embedded on arbitrary customer sites, so CORS stays
	// wide open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
