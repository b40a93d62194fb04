package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"insurancelk_backend/internal/logger"
	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/notifier"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

type AdminNotificationService interface {
	CreateNotification(req *dto.CreateNotificationRequest) (*dto.AdminNotificationResponse, error)
	// SendNewNotification creates the notification and dispatches it in
	// one step, skipping the draft stage.
	SendNewNotification(req *dto.CreateNotificationRequest) (*dto.AdminNotificationResponse, error)
	GetNotification(id string) (*dto.AdminNotificationResponse, error)
	GetAllNotifications() ([]dto.AdminNotificationResponse, error)
	GetNotificationsByStatus(status string) ([]dto.AdminNotificationResponse, error)
	SearchNotifications(query string) ([]dto.AdminNotificationResponse, error)
	UpdateNotification(id string, req *dto.UpdateNotificationRequest) (*dto.AdminNotificationResponse, error)
	SendNotification(id string) (*dto.AdminNotificationResponse, error)
	DeleteNotification(id string) error
	DeleteAllNotifications() error
	GetStatistics() (*dto.NotificationStatisticsResponse, error)
	// SendDueScheduled dispatches every scheduled notification whose
	// schedule date has passed and returns how many were sent.
	SendDueScheduled() (int, error)
}

type adminNotificationService struct {
	repo      repositories.AdminNotificationRepository
	subject   *notifier.Subject
	estimator AudienceEstimator
	now       func() time.Time
}

func NewAdminNotificationService(
	repo repositories.AdminNotificationRepository,
	subject *notifier.Subject,
	estimator AudienceEstimator,
) AdminNotificationService {
	return &adminNotificationService{
		repo:      repo,
		subject:   subject,
		estimator: estimator,
		now:       time.Now,
	}
}

// CreateNotification persists a new notification as DRAFT, or as
// SCHEDULED when a future schedule date is set. Nothing is delivered
// until SendNotification or the dispatch worker picks it up.
func (s *adminNotificationService) CreateNotification(req *dto.CreateNotificationRequest) (*dto.AdminNotificationResponse, error) {
	notification := s.fromCreateRequest(req)
	if req.ScheduleDate != nil && req.ScheduleDate.After(s.now()) {
		notification.Status = models.NotificationStatusScheduled
	}

	if err := s.repo.Create(notification); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to create notification", http.StatusInternalServerError)
	}
	return s.toResponse(notification), nil
}

func (s *adminNotificationService) SendNewNotification(req *dto.CreateNotificationRequest) (*dto.AdminNotificationResponse, error) {
	notification := s.fromCreateRequest(req)
	if err := s.repo.Create(notification); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to create notification", http.StatusInternalServerError)
	}
	if err := s.dispatch(notification); err != nil {
		return nil, err
	}
	return s.toResponse(notification), nil
}

func (s *adminNotificationService) fromCreateRequest(req *dto.CreateNotificationRequest) *models.AdminNotification {
	return &models.AdminNotification{
		Title:        req.Title,
		Message:      req.Message,
		Type:         models.NotificationType(req.Type),
		Priority:     models.PriorityLevel(req.Priority),
		Target:       models.TargetAudience(req.TargetAudience),
		Status:       models.NotificationStatusDraft,
		ScheduleDate: req.ScheduleDate,
		ExpiryDate:   req.ExpiryDate,
		CreatedBy:    req.CreatedBy,
		IsActive:     true,
	}
}

func (s *adminNotificationService) GetNotification(id string) (*dto.AdminNotificationResponse, error) {
	notification, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(notification), nil
}

func (s *adminNotificationService) GetAllNotifications() ([]dto.AdminNotificationResponse, error) {
	notifications, err := s.repo.FindAllActive()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notifications", http.StatusInternalServerError)
	}
	return s.toResponses(notifications), nil
}

func (s *adminNotificationService) GetNotificationsByStatus(status string) ([]dto.AdminNotificationResponse, error) {
	notificationStatus := models.NotificationStatus(strings.ToUpper(status))
	switch notificationStatus {
	case models.NotificationStatusDraft, models.NotificationStatusScheduled, models.NotificationStatusSent:
	default:
		return nil, apperrors.ErrInvalidStatus("notification", fmt.Sprintf("Unknown notification status: %s", status))
	}

	notifications, err := s.repo.FindActiveByStatus(notificationStatus)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notifications", http.StatusInternalServerError)
	}
	return s.toResponses(notifications), nil
}

func (s *adminNotificationService) SearchNotifications(query string) ([]dto.AdminNotificationResponse, error) {
	notifications, err := s.repo.Search(query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Notification search failed", http.StatusInternalServerError)
	}
	return s.toResponses(notifications), nil
}

func (s *adminNotificationService) UpdateNotification(id string, req *dto.UpdateNotificationRequest) (*dto.AdminNotificationResponse, error) {
	notification, err := s.find(id)
	if err != nil {
		return nil, err
	}

	// full overwrite, so a cleared schedule or expiry date sticks
	notification.Title = req.Title
	notification.Message = req.Message
	notification.Type = models.NotificationType(req.Type)
	notification.Priority = models.PriorityLevel(req.Priority)
	notification.Target = models.TargetAudience(req.TargetAudience)
	notification.ScheduleDate = req.ScheduleDate
	notification.ExpiryDate = req.ExpiryDate
	if notification.Status == models.NotificationStatusDraft && req.ScheduleDate != nil && req.ScheduleDate.After(s.now()) {
		notification.Status = models.NotificationStatusScheduled
	}
	if notification.Status == models.NotificationStatusScheduled && req.ScheduleDate == nil {
		notification.Status = models.NotificationStatusDraft
	}

	if err := s.repo.Save(notification); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to update notification", http.StatusInternalServerError)
	}
	return s.toResponse(notification), nil
}

func (s *adminNotificationService) SendNotification(id string) (*dto.AdminNotificationResponse, error) {
	notification, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if notification.Status == models.NotificationStatusSent {
		return nil, apperrors.ErrInvalidOperation("notification", "Notification has already been sent")
	}

	if err := s.dispatch(notification); err != nil {
		return nil, err
	}
	return s.toResponse(notification), nil
}

func (s *adminNotificationService) DeleteNotification(id string) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to delete notification", http.StatusInternalServerError)
	}
	return nil
}

func (s *adminNotificationService) DeleteAllNotifications() error {
	if err := s.repo.DeleteAll(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to delete notifications", http.StatusInternalServerError)
	}
	return nil
}

func (s *adminNotificationService) GetStatistics() (*dto.NotificationStatisticsResponse, error) {
	stats, err := s.repo.Statistics()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notification statistics", http.StatusInternalServerError)
	}
	return &dto.NotificationStatisticsResponse{
		Total:     stats.Total,
		Sent:      stats.Sent,
		Draft:     stats.Draft,
		Scheduled: stats.Scheduled,
	}, nil
}

func (s *adminNotificationService) SendDueScheduled() (int, error) {
	due, err := s.repo.FindDueScheduled(s.now())
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load scheduled notifications", http.StatusInternalServerError)
	}

	sent := 0
	for i := range due {
		notification := &due[i]
		if err := s.dispatch(notification); err != nil {
			logger.Error("Scheduled notification dispatch failed",
				slog.String("notification_id", notification.ID),
				slog.Any("error", err),
			)
			continue
		}
		sent++
	}
	return sent, nil
}

// dispatch marks the notification SENT with its simulated sent-count,
// persists it, then publishes the saved record to the observer chain.
// Observers always see the SENT state. There is no retry: a failing
// observer aborts the remaining ones and surfaces as a delivery error,
// but the notification stays SENT.
func (s *adminNotificationService) dispatch(notification *models.AdminNotification) error {
	notification.Status = models.NotificationStatusSent
	notification.SentCount = s.estimator.Estimate(notification.Target)

	if err := s.repo.Save(notification); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to record notification send", http.StatusInternalServerError)
	}

	if err := s.subject.Publish(notification); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "notification", "Notification delivery failed", http.StatusInternalServerError)
	}
	return nil
}

func (s *adminNotificationService) find(id string) (*models.AdminNotification, error) {
	notification, err := s.repo.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound(id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notification", http.StatusInternalServerError)
	}
	return notification, nil
}

func (s *adminNotificationService) toResponse(n *models.AdminNotification) *dto.AdminNotificationResponse {
	return &dto.AdminNotificationResponse{
		ID:             n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Priority:       string(n.Priority),
		TargetAudience: string(n.Target),
		Status:         string(n.Status),
		ScheduleDate:   n.ScheduleDate,
		ExpiryDate:     n.ExpiryDate,
		SentCount:      n.SentCount,
		CreatedBy:      n.CreatedBy,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func (s *adminNotificationService) toResponses(notifications []models.AdminNotification) []dto.AdminNotificationResponse {
	out := make([]dto.AdminNotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, *s.toResponse(&notifications[i]))
	}
	return out
}
