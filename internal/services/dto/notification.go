package dto

import "time"

type CreateNotificationRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Message        string     `json:"message" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=GENERAL UPDATE PROMOTION MAINTENANCE SECURITY"`
	Priority       string     `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	TargetAudience string     `json:"targetAudience" validate:"required,target_audience"`
	ScheduleDate   *time.Time `json:"scheduleDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	CreatedBy      string     `json:"createdBy"`
}

// UpdateNotificationRequest replaces every editable field, so omitting
// scheduleDate or expiryDate clears them.
type UpdateNotificationRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Message        string     `json:"message" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=GENERAL UPDATE PROMOTION MAINTENANCE SECURITY"`
	Priority       string     `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	TargetAudience string     `json:"targetAudience" validate:"required,target_audience"`
	ScheduleDate   *time.Time `json:"scheduleDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
}

type AdminNotificationResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	Status         string     `json:"status"`
	ScheduleDate   *time.Time `json:"scheduleDate,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	SentCount      int        `json:"sentCount"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type NotificationStatisticsResponse struct {
	Total     int64 `json:"total"`
	Sent      int64 `json:"sent"`
	Draft     int64 `json:"draft"`
	Scheduled int64 `json:"scheduled"`
}

type UserNotificationResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	Priority   string     `json:"priority"`
	SentBy     string     `json:"sentBy,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	IsRead     bool       `json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	IsArchived bool       `json:"isArchived"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
