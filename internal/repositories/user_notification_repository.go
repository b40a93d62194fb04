package repositories

import (
	"errors"
	"time"

	"insurancelk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotificationNotFound = errors.New("user notification not found")

type UserNotificationRepository interface {
	Create(notification *models.UserNotification) error
	FindByID(id string) (*models.UserNotification, error)
	// ExistsForUser reports whether a delivered copy already exists for the
	// (adminNotificationID, userID) pair - the fan-out idempotency key.
	ExistsForUser(adminNotificationID, userID string) (bool, error)
	FindByUserID(userID string) ([]models.UserNotification, error)
	MarkAsRead(id string) error
	MarkAllAsRead(userID string) error
	Archive(id string) error
	// Delete flips the deleted flag; rows stay in place for audit.
	Delete(id string) error
	CountUnread(userID string) (int64, error)
}

type UserNotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewUserNotificationRepository(db *gorm.DB) UserNotificationRepository {
	return &UserNotificationRepositoryImpl{db: db}
}

func (r *UserNotificationRepositoryImpl) Create(notification *models.UserNotification) error {
	return r.db.Create(notification).Error
}

func (r *UserNotificationRepositoryImpl) FindByID(id string) (*models.UserNotification, error) {
	var notification models.UserNotification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *UserNotificationRepositoryImpl) ExistsForUser(adminNotificationID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserNotification{}).
		Where("admin_notification_id = ? AND user_id = ?", adminNotificationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserNotificationRepositoryImpl) FindByUserID(userID string) ([]models.UserNotification, error) {
	var notifications []models.UserNotification
	err := r.db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *UserNotificationRepositoryImpl) MarkAsRead(id string) error {
	return r.updateFlags(id, map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})
}

func (r *UserNotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *UserNotificationRepositoryImpl) Archive(id string) error {
	return r.updateFlags(id, map[string]interface{}{
		"is_archived": true,
		"archived_at": time.Now(),
	})
}

func (r *UserNotificationRepositoryImpl) Delete(id string) error {
	return r.updateFlags(id, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": time.Now(),
	})
}

func (r *UserNotificationRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

func (r *UserNotificationRepositoryImpl) updateFlags(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.UserNotification{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotificationNotFound
	}
	return nil
}
