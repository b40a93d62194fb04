package repositories

import (
	"errors"
	"time"

	"insurancelk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationStatistics counts active admin notifications per status.
type NotificationStatistics struct {
	Total     int64 `json:"total"`
	Sent      int64 `json:"sent"`
	Draft     int64 `json:"draft"`
	Scheduled int64 `json:"scheduled"`
}

type AdminNotificationRepository interface {
	Create(notification *models.AdminNotification) error
	Save(notification *models.AdminNotification) error
	// FindActiveByID returns the notification only when its active flag is
	// still set; soft-deleted rows are invisible to reads.
	FindActiveByID(id string) (*models.AdminNotification, error)
	FindAllActive() ([]models.AdminNotification, error)
	FindActiveByStatus(status models.NotificationStatus) ([]models.AdminNotification, error)
	// FindDueScheduled returns active SCHEDULED notifications whose schedule
	// date is at or before now.
	FindDueScheduled(now time.Time) ([]models.AdminNotification, error)
	// Search matches the keyword case-insensitively against title and message.
	Search(keyword string) ([]models.AdminNotification, error)
	Delete(id string) error
	DeleteAll() error
	Statistics() (*NotificationStatistics, error)
}

type AdminNotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewAdminNotificationRepository(db *gorm.DB) AdminNotificationRepository {
	return &AdminNotificationRepositoryImpl{db: db}
}

func (r *AdminNotificationRepositoryImpl) Create(notification *models.AdminNotification) error {
	return r.db.Create(notification).Error
}

func (r *AdminNotificationRepositoryImpl) Save(notification *models.AdminNotification) error {
	return r.db.Save(notification).Error
}

func (r *AdminNotificationRepositoryImpl) FindActiveByID(id string) (*models.AdminNotification, error) {
	var notification models.AdminNotification
	err := r.db.First(&notification, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *AdminNotificationRepositoryImpl) FindAllActive() ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *AdminNotificationRepositoryImpl) FindActiveByStatus(status models.NotificationStatus) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	err := r.db.
		Where("status = ? AND is_active = ?", status, true).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *AdminNotificationRepositoryImpl) FindDueScheduled(now time.Time) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	err := r.db.
		Where("status = ? AND is_active = ? AND schedule_date IS NOT NULL AND schedule_date <= ?",
			models.NotificationStatusScheduled, true, now).
		Order("schedule_date ASC").
		Find(&notifications).Error
	return notifications, err
}

func (r *AdminNotificationRepositoryImpl) Search(keyword string) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("is_active = ? AND (title ILIKE ? OR message ILIKE ?)", true, pattern, pattern).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *AdminNotificationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.AdminNotification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *AdminNotificationRepositoryImpl) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.AdminNotification{}).Error
}

func (r *AdminNotificationRepositoryImpl) Statistics() (*NotificationStatistics, error) {
	stats := &NotificationStatistics{}

	base := func() *gorm.DB {
		return r.db.Model(&models.AdminNotification{}).Where("is_active = ?", true)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.NotificationStatusSent).Count(&stats.Sent).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.NotificationStatusDraft).Count(&stats.Draft).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.NotificationStatusScheduled).Count(&stats.Scheduled).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
