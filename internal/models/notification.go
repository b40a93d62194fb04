package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminNotification is an admin-authored broadcast. IsActive is a soft-delete
// marker consulted only by reads; deletion itself is hard.
type AdminNotification struct {
	BaseModel
	Title        string             `gorm:"not null"`
	Message      string             `gorm:"not null"`
	Type         NotificationType   `gorm:"not null"`
	Priority     PriorityLevel      `gorm:"not null"`
	Target       TargetAudience     `gorm:"not null"`
	Status       NotificationStatus `gorm:"not null;index"`
	ScheduleDate *time.Time
	ExpiryDate   *time.Time
	SentCount    int    `gorm:"default:0"` // simulated audience size
	CreatedBy    string
	IsActive     bool `gorm:"default:true;index"`
}

// UserNotification is the per-user delivered copy of an AdminNotification.
// At most one row exists per (admin_notification_id, user_id).
type UserNotification struct {
	BaseModel
	UserID              string           `gorm:"not null;index;uniqueIndex:idx_user_notification_source"`
	AdminNotificationID string           `gorm:"type:uuid;not null;uniqueIndex:idx_user_notification_source"`
	Title               string           `gorm:"not null"`
	Message             string
	Type                NotificationType `gorm:"not null"`
	Priority            PriorityLevel    `gorm:"not null"`
	SentBy              string
	ExpiryDate          *time.Time
	Data                datatypes.JSON `gorm:"type:jsonb"` // source snapshot written at fan-out

	IsRead     bool `gorm:"default:false"`
	ReadAt     *time.Time
	IsArchived bool `gorm:"default:false"`
	ArchivedAt *time.Time
	IsDeleted  bool `gorm:"default:false;index"`
	DeletedAt  *time.Time
}
