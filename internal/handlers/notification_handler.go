package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insurancelk_backend/internal/services"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

// NotificationHandler serves the admin notification orchestration surface.
type NotificationHandler struct {
	*BaseHandler
	notificationService services.AdminNotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.AdminNotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/notifications")
	{
		admin.POST("", h.CreateNotification)
		admin.POST("/send", h.CreateAndSendNotification)
		admin.POST("/schedule", h.ScheduleNotification)
		admin.GET("", h.GetAllNotifications)
		admin.GET("/stats", h.GetStatistics)
		admin.GET("/search", h.SearchNotifications)
		admin.GET("/status/:status", h.GetNotificationsByStatus)
		admin.GET("/:notificationId", h.GetNotification)
		admin.PUT("/:notificationId", h.UpdateNotification)
		admin.POST("/:notificationId/send", h.SendNotification)
		admin.DELETE("/:notificationId", h.DeleteNotification)
		admin.DELETE("", h.DeleteAllNotifications)
	}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	notification, err := h.notificationService.CreateNotification(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// CreateAndSendNotification creates the notification and dispatches it
// right away, ignoring any schedule date on the request.
func (h *NotificationHandler) CreateAndSendNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.ScheduleDate = nil

	notification, err := h.notificationService.SendNewNotification(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// ScheduleNotification creates a notification that the dispatch worker
// picks up once its schedule date passes. The date must be in the future.
func (h *NotificationHandler) ScheduleNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	if req.ScheduleDate == nil || !req.ScheduleDate.After(time.Now()) {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Schedule date must be set and in the future"))
		return
	}

	notification, err := h.notificationService.CreateNotification(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) GetAllNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetAllNotifications()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	notification, err := h.notificationService.GetNotification(notificationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) GetNotificationsByStatus(c *gin.Context) {
	status, ok := h.RequireParam(c, "status")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotificationsByStatus(status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) SearchNotifications(c *gin.Context) {
	notifications, err := h.notificationService.SearchNotifications(c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	var req dto.UpdateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	notification, err := h.notificationService.UpdateNotification(notificationID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) SendNotification(c *gin.Context) {
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	notification, err := h.notificationService.SendNotification(notificationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID, ok := h.RequireParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func (h *NotificationHandler) DeleteAllNotifications(c *gin.Context) {
	if err := h.notificationService.DeleteAllNotifications(); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications deleted"})
}

func (h *NotificationHandler) GetStatistics(c *gin.Context) {
	stats, err := h.notificationService.GetStatistics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
