package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/collecto/payment-collector-go/config"
	controllers "github.com/collecto/payment-collector-go/controllers"
	middleware "github.com/collecto/payment-collector-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	r.POST("/auth/login", controllers.Login(cfg))
	r.POST("/auth/logout", controllers.Logout(cfg))

	auth := middleware.AuthMiddleware(cfg)

	events := r.Group("/events")
	{
		// payer-facing, reachable from the shared slug URL
		events.GET("/:collectorName/:slug", controllers.GetEventBySlug(cfg))
		events.POST("/mark-paid", controllers.MarkPaid(cfg))
		events.POST("/pay-as", controllers.PayAs(cfg))

		// collector-only
		events.POST("", auth, controllers.CreateEvent(cfg))
		events.GET("", auth, controllers.ListEvents(cfg))
		events.POST("/verify-payment", auth, controllers.VerifyPayment(cfg))
		events.POST("/reject-payment", auth, controllers.RejectPayment(cfg))
	}
}
