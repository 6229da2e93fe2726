package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pitchbook/handlers"
	"pitchbook/middleware"
	"pitchbook/models"
	"pitchbook/utils"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/users")
	{
		api.POST("/register", hb.User.RegisterUserHandler)
		api.POST("/login", hb.User.AuthenticateUserHandler)
		api.POST("/refresh-token", hb.User.RefreshTokenHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("/logout", hb.User.LogoutHandler)
		protected.GET("/me", hb.User.GetProfileHandler)
		protected.PATCH("/me", hb.User.UpdateProfileHandler)
		protected.DELETE("/me", hb.User.DeleteAccountHandler)
		protected.GET("/me/favorites", hb.User.ListFavoritesHandler)
		protected.POST("/me/favorites/:futsalID", hb.User.AddFavoriteHandler)
		protected.DELETE("/me/favorites/:futsalID", hb.User.RemoveFavoriteHandler)
	}
}

// RegisterFutsalRoutes registers venue endpoints. Search and detail are
// public; management requires the owner (or admin) role.
func RegisterFutsalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/futsals")
	{
		api.GET("", hb.Futsal.SearchFutsalsHandler)

		owner := api.Group("")
		owner.Use(middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRole(models.RoleFutsalOwner, models.RoleAdmin))
		owner.POST("", hb.Futsal.CreateFutsalHandler)
		owner.GET("/mine", hb.Futsal.MyFutsalsHandler)
		owner.PATCH("/:futsalID", hb.Futsal.UpdateFutsalHandler)
		owner.DELETE("/:futsalID", hb.Futsal.DeleteFutsalHandler)
		owner.POST("/:futsalID/photos", hb.Futsal.UploadPhotoHandler)

		api.GET("/:futsalID", hb.Futsal.GetFutsalHandler)
	}
}

// RegisterBookingRoutes registers the slot-selection and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/bookings")
	{
		api.GET("/available-slots", hb.Booking.AvailableSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.CSRFMiddleware())
		protected.POST("/sessions", hb.Booking.StartSessionHandler)
		protected.GET("/sessions/:sessionID", hb.Booking.GetSessionHandler)
		protected.PATCH("/sessions/:sessionID/start", hb.Booking.UpdateStartTimeHandler)
		protected.PATCH("/sessions/:sessionID/end", hb.Booking.UpdateEndTimeHandler)
		protected.POST("/sessions/:sessionID/refresh", hb.Booking.RefreshAvailabilityHandler)
		protected.POST("/sessions/:sessionID/confirm", hb.Booking.ConfirmBookingHandler)
		protected.DELETE("/sessions/:sessionID", hb.Booking.CancelSessionHandler)
		protected.POST("/:bookingID/initiate-payment", hb.Booking.InitiatePaymentHandler)
		protected.POST("/:bookingID/cancel", hb.Booking.CancelBookingHandler)
		protected.GET("/my", hb.Booking.MyBookingsHandler)
	}
}

// RegisterNotificationRoutes registers notification endpoints, including
// the WebSocket entry point.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/v1/ws", hb.WS.ConnectHandler)

	api := r.Group("/api/v1/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Notifications.ListNotificationsHandler)
		api.GET("/unread-count", hb.Notifications.UnreadCountHandler)
		api.POST("/read-all", hb.Notifications.MarkAllNotificationsReadHandler)
		api.POST("/:notificationID/read", hb.Notifications.MarkNotificationReadHandler)
	}
}

// RegisterOwnerRoutes sets up the owner dashboard endpoints.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/owner")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRole(models.RoleFutsalOwner, models.RoleAdmin))
		api.GET("/bookings", hb.Owner.OwnerBookingsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRole(models.RoleAdmin))
		api.GET("/users", hb.Admin.GetAllUsersHandler)
		api.GET("/futsals", hb.Admin.GetAllFutsalsHandler)
		api.GET("/bookings", hb.Admin.GetAllBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/api/v1/csrf-token", handlers.CSRFTokenHandler)

	RegisterUserRoutes(r, hb)
	RegisterFutsalRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
