package services

import (
	"insurancelk_backend/internal/email"
	"insurancelk_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	PaymentService           PaymentService
	AdminNotificationService AdminNotificationService
	UserNotificationService  UserNotificationService
	EmailService             email.Provider
	Storage                  storage.Storage
}
