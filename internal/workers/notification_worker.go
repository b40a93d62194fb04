package workers

import (
	"context"
	"time"

	"insurancelk_backend/internal/logger"
	"insurancelk_backend/internal/services"
)

// NotificationWorker periodically dispatches scheduled notifications whose
// schedule date has passed.
type NotificationWorker struct {
	service  services.AdminNotificationService
	interval time.Duration
}

func NewNotificationWorker(service services.AdminNotificationService, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		service:  service,
		interval: interval,
	}
}

// Start runs the dispatch loop until the context is cancelled. A zero or
// negative interval disables the worker.
func (w *NotificationWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.WorkerLog("notification", "disabled", nil)
		return
	}
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.WorkerLog("notification", "started", nil)
	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("notification", "stopped", nil)
			return
		case <-ticker.C:
			sent, err := w.service.SendDueScheduled()
			if err != nil {
				logger.WorkerLog("notification", "dispatch scheduled notifications", err)
				continue
			}
			if sent > 0 {
				logger.Info("Dispatched scheduled notifications", "count", sent)
			}
		}
	}
}
