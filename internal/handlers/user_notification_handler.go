package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insurancelk_backend/internal/services"
	"insurancelk_backend/internal/services/dto"
)

// UserNotificationHandler serves the per-user notification inbox.
type UserNotificationHandler struct {
	*BaseHandler
	notificationService services.UserNotificationService
}

func NewUserNotificationHandler(base *BaseHandler, notificationService services.UserNotificationService) *UserNotificationHandler {
	return &UserNotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *UserNotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications/:userId")
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/:notificationId/archive", h.ArchiveNotification)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}
}

func (h *UserNotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetUserNotifications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *UserNotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *UserNotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *UserNotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *UserNotificationHandler) ArchiveNotification(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.ArchiveNotification(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification archived"})
}

func (h *UserNotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
