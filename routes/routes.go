package routes

import (
	"net/http"
	"time"

	"solvo/handlers"
	"solvo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/session", hb.SessionHandler)
	}
}

// RegisterCatalogRoutes registers the public browsing endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/destinations", hb.DestinationsHandler)
		api.GET("/safaris", hb.SafarisHandler)
		api.GET("/safaris/:id", hb.SafariHandler)
		api.GET("/accommodations", hb.AccommodationsHandler)
		api.GET("/accommodations/featured", hb.FeaturedAccommodationsHandler)
		api.GET("/accommodations/:id", hb.AccommodationHandler)
		api.GET("/currency/symbols", hb.CurrencySymbolsHandler)
		api.GET("/currency/convert", hb.CurrencyConvertHandler)
	}
}

// RegisterBookingRoutes registers the safari booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("/quote", hb.BookingQuoteHandler)

		// Submission and follow-ups require a logged-in visitor.
		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		protected.POST("", hb.CreateBookingHandler)
		protected.GET("/confirmation", hb.BookingConfirmationHandler)
		protected.POST("/:id/checkout", hb.BookingCheckoutHandler)
		protected.GET("/:id/receipt.pdf", hb.BookingReceiptPDFHandler)
		protected.GET("/:id/receipt", hb.BookingReceiptPrintHandler)
		protected.PUT("/:id/status", hb.UpdateBookingStatusHandler)
	}
}

// RegisterEnquiryRoutes registers the accommodation enquiry flow.
func RegisterEnquiryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/enquiries")
	{
		api.Use(middleware.RequireAuth())
		api.POST("", hb.CreateEnquiryHandler)
		api.POST("/:id/pay", hb.EnquiryPaymentHandler)
		api.POST("/:id/expand", hb.ExpandEnquiryHandler)
		api.POST("/:id/reply", hb.ReplyEnquiryHandler)
	}
}

// RegisterDashboardRoutes registers the logged-in dashboard and profile.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.RequireAuth())
		api.GET("/dashboard", hb.DashboardHandler)
		api.GET("/profile", hb.ProfileHandler)
		api.PUT("/profile", hb.UpdateProfileHandler)
	}
}

// RegisterChatRoutes registers the chat widget endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.GET("", hb.ChatOpenHandler)
		api.POST("/messages", hb.ChatMessageHandler)
		api.POST("/attachments", hb.ChatAttachmentHandler)
		api.DELETE("/messages", hb.ChatHistoryClearHandler)
		api.GET("/faqs", hb.FAQSearchHandler)
	}
}

// RegisterPreferenceRoutes registers session preference endpoints.
func RegisterPreferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/preferences")
	{
		api.GET("", hb.PreferencesHandler)
		api.PUT("", hb.UpdatePreferencesHandler)
	}
}

// RegisterContactRoutes registers the contact endpoints.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contact")
	{
		api.POST("", hb.ContactHandler)
		api.GET("/info", hb.ContactInfoHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Solvo"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterEnquiryRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterPreferenceRoutes(r, hb)
	RegisterContactRoutes(r, hb)
	RegisterHealthRoute(r)
}
