package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"insurancelk_backend/internal/email"
	"insurancelk_backend/internal/logger"
	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
)

// DatabaseObserver materializes a published notification into one
// UserNotification row per resolved recipient. Delivery is idempotent:
// a recipient who already has a row for the source notification is
// skipped, so re-publishing never duplicates rows.
type DatabaseObserver struct {
	directory Directory
	repo      repositories.UserNotificationRepository
}

func NewDatabaseObserver(directory Directory, repo repositories.UserNotificationRepository) *DatabaseObserver {
	return &DatabaseObserver{directory: directory, repo: repo}
}

func (o *DatabaseObserver) Name() string { return "database" }

func (o *DatabaseObserver) Update(n *models.AdminNotification) error {
	recipients, err := o.directory.Resolve(n.Target)
	if err != nil {
		return fmt.Errorf("resolve audience: %w", err)
	}

	snapshot, err := json.Marshal(map[string]interface{}{
		"sourceId": n.ID,
		"target":   n.Target,
		"type":     n.Type,
		"priority": n.Priority,
	})
	if err != nil {
		return fmt.Errorf("marshal notification snapshot: %w", err)
	}

	for _, r := range recipients {
		exists, err := o.repo.ExistsForUser(n.ID, r.ID)
		if err != nil {
			return fmt.Errorf("check existing delivery for user %s: %w", r.ID, err)
		}
		if exists {
			continue
		}

		userNotification := &models.UserNotification{
			UserID:              r.ID,
			AdminNotificationID: n.ID,
			Title:               n.Title,
			Message:             n.Message,
			Type:                n.Type,
			Priority:            n.Priority,
			SentBy:              n.CreatedBy,
			ExpiryDate:          n.ExpiryDate,
			Data:                datatypes.JSON(snapshot),
		}
		if err := o.repo.Create(userNotification); err != nil {
			return fmt.Errorf("store notification for user %s: %w", r.ID, err)
		}
	}
	return nil
}

// LogObserver writes a structured record of every published notification.
type LogObserver struct{}

func NewLogObserver() *LogObserver { return &LogObserver{} }

func (o *LogObserver) Name() string { return "log" }

func (o *LogObserver) Update(n *models.AdminNotification) error {
	logger.Info("Notification published",
		slog.String("notification_id", n.ID),
		slog.String("title", n.Title),
		slog.String("type", string(n.Type)),
		slog.String("status", string(n.Status)),
		slog.String("priority", string(n.Priority)),
		slog.String("target", string(n.Target)),
		slog.String("created_by", n.CreatedBy),
	)
	return nil
}

// EmailObserver sends the published notification to every resolved
// recipient through the configured email provider.
type EmailObserver struct {
	directory Directory
	provider  email.Provider
}

func NewEmailObserver(directory Directory, provider email.Provider) *EmailObserver {
	return &EmailObserver{directory: directory, provider: provider}
}

func (o *EmailObserver) Name() string { return "email" }

func (o *EmailObserver) Update(n *models.AdminNotification) error {
	recipients, err := o.directory.Resolve(n.Target)
	if err != nil {
		return fmt.Errorf("resolve audience: %w", err)
	}

	for _, r := range recipients {
		msg := &email.Email{
			To:      []string{r.Email},
			Subject: fmt.Sprintf("[%s] %s", n.Priority, n.Title),
			Body:    n.Message,
		}
		if err := o.provider.Send(msg); err != nil {
			return fmt.Errorf("send email to %s: %w", r.Email, err)
		}
	}
	return nil
}
