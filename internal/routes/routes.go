package routes

import (
	"github.com/gin-gonic/gin"

	"insurancelk_backend/internal/handlers"
)

// RegisterRoutes registers the full HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.PaymentHandler.RegisterRoutes(api)
		appHandlers.AdminPaymentHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.UserNotificationHandler.RegisterRoutes(api)
	}
}
