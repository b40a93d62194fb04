package services

import (
	"errors"
	"net/http"

	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

type UserNotificationService interface {
	GetUserNotifications(userID string) ([]dto.UserNotificationResponse, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	ArchiveNotification(userID, notificationID string) error
	DeleteNotification(userID, notificationID string) error
}

type userNotificationService struct {
	repo repositories.UserNotificationRepository
}

func NewUserNotificationService(repo repositories.UserNotificationRepository) UserNotificationService {
	return &userNotificationService{repo: repo}
}

func (s *userNotificationService) GetUserNotifications(userID string) ([]dto.UserNotificationResponse, error) {
	notifications, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notifications", http.StatusInternalServerError)
	}

	out := make([]dto.UserNotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, *toUserResponse(&notifications[i]))
	}
	return out, nil
}

func (s *userNotificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to count unread notifications", http.StatusInternalServerError)
	}
	return count, nil
}

func (s *userNotificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.authorize(userID, notificationID); err != nil {
		return err
	}
	if err := s.repo.MarkAsRead(notificationID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to mark notification as read", http.StatusInternalServerError)
	}
	return nil
}

func (s *userNotificationService) MarkAllAsRead(userID string) error {
	if err := s.repo.MarkAllAsRead(userID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to mark notifications as read", http.StatusInternalServerError)
	}
	return nil
}

func (s *userNotificationService) ArchiveNotification(userID, notificationID string) error {
	if err := s.authorize(userID, notificationID); err != nil {
		return err
	}
	if err := s.repo.Archive(notificationID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to archive notification", http.StatusInternalServerError)
	}
	return nil
}

func (s *userNotificationService) DeleteNotification(userID, notificationID string) error {
	if err := s.authorize(userID, notificationID); err != nil {
		return err
	}
	if err := s.repo.Delete(notificationID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to delete notification", http.StatusInternalServerError)
	}
	return nil
}

// authorize confirms the notification copy exists and belongs to the user.
func (s *userNotificationService) authorize(userID, notificationID string) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotificationNotFound) {
			return apperrors.ErrNotificationNotFound(notificationID)
		}
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "notification", "Failed to load notification", http.StatusInternalServerError)
	}
	if notification.UserID != userID {
		return apperrors.ErrNotificationAccessDenied
	}
	return nil
}

func toUserResponse(n *models.UserNotification) *dto.UserNotificationResponse {
	return &dto.UserNotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       string(n.Type),
		Priority:   string(n.Priority),
		SentBy:     n.SentBy,
		ExpiryDate: n.ExpiryDate,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt,
	}
}
