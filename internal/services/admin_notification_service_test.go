package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/notifier"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

type fakeAdminNotificationRepo struct {
	rows map[string]*models.AdminNotification
	seq  int
}

var _ repositories.AdminNotificationRepository = (*fakeAdminNotificationRepo)(nil)

func newFakeAdminNotificationRepo() *fakeAdminNotificationRepo {
	return &fakeAdminNotificationRepo{rows: make(map[string]*models.AdminNotification)}
}

func (f *fakeAdminNotificationRepo) Create(n *models.AdminNotification) error {
	if n.ID == "" {
		f.seq++
		n.ID = fmt.Sprintf("n-%d", f.seq)
	}
	clone := *n
	f.rows[n.ID] = &clone
	return nil
}

func (f *fakeAdminNotificationRepo) Save(n *models.AdminNotification) error {
	clone := *n
	f.rows[n.ID] = &clone
	return nil
}

func (f *fakeAdminNotificationRepo) FindActiveByID(id string) (*models.AdminNotification, error) {
	n, ok := f.rows[id]
	if !ok || !n.IsActive {
		return nil, repositories.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (f *fakeAdminNotificationRepo) FindAllActive() ([]models.AdminNotification, error) {
	var out []models.AdminNotification
	for _, n := range f.rows {
		if n.IsActive {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeAdminNotificationRepo) FindActiveByStatus(status models.NotificationStatus) ([]models.AdminNotification, error) {
	var out []models.AdminNotification
	for _, n := range f.rows {
		if n.IsActive && n.Status == status {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeAdminNotificationRepo) FindDueScheduled(now time.Time) ([]models.AdminNotification, error) {
	var out []models.AdminNotification
	for _, n := range f.rows {
		if n.IsActive && n.Status == models.NotificationStatusScheduled &&
			n.ScheduleDate != nil && !n.ScheduleDate.After(now) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeAdminNotificationRepo) Search(query string) ([]models.AdminNotification, error) {
	q := strings.ToLower(query)
	var out []models.AdminNotification
	for _, n := range f.rows {
		if !n.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Message), q) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeAdminNotificationRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAdminNotificationRepo) DeleteAll() error {
	f.rows = make(map[string]*models.AdminNotification)
	return nil
}

func (f *fakeAdminNotificationRepo) Statistics() (*repositories.NotificationStatistics, error) {
	stats := &repositories.NotificationStatistics{}
	for _, n := range f.rows {
		if !n.IsActive {
			continue
		}
		stats.Total++
		switch n.Status {
		case models.NotificationStatusSent:
			stats.Sent++
		case models.NotificationStatusDraft:
			stats.Draft++
		case models.NotificationStatusScheduled:
			stats.Scheduled++
		}
	}
	return stats, nil
}

type fixedEstimator struct{ n int }

func (e *fixedEstimator) Estimate(models.TargetAudience) int { return e.n }

type flakyObserver struct {
	name string
	err  error
	hits int

	seenStatus models.NotificationStatus
	seenCount  int
}

func (o *flakyObserver) Name() string { return o.name }

func (o *flakyObserver) Update(n *models.AdminNotification) error {
	o.hits++
	o.seenStatus = n.Status
	o.seenCount = n.SentCount
	return o.err
}

type notificationFixture struct {
	svc      *adminNotificationService
	repo     *fakeAdminNotificationRepo
	observer *flakyObserver
	now      time.Time
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	fx := &notificationFixture{
		repo:     newFakeAdminNotificationRepo(),
		observer: &flakyObserver{name: "database"},
		now:      time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}

	subject := notifier.NewSubject()
	subject.Attach(fx.observer)

	svc := NewAdminNotificationService(fx.repo, subject, &fixedEstimator{n: 1200}).(*adminNotificationService)
	svc.now = func() time.Time { return fx.now }
	fx.svc = svc
	return fx
}

func createRequest(target string) *dto.CreateNotificationRequest {
	return &dto.CreateNotificationRequest{
		Title:          "Planned maintenance",
		Message:        "The portal will be offline on Saturday night.",
		Type:           string(models.NotificationTypeMaintenance),
		Priority:       string(models.PriorityHigh),
		TargetAudience: target,
		CreatedBy:      "admin",
	}
}

func TestCreateNotification_PersistsDraft(t *testing.T) {
	fx := newNotificationFixture(t)

	resp, err := fx.svc.CreateNotification(createRequest("ALL"))
	require.NoError(t, err)

	assert.Equal(t, string(models.NotificationStatusDraft), resp.Status)
	assert.Equal(t, 0, resp.SentCount)
	assert.Equal(t, 0, fx.observer.hits, "creating a draft must not publish anything")
}

func TestCreateNotification_FutureScheduleStaysScheduled(t *testing.T) {
	fx := newNotificationFixture(t)

	schedule := fx.now.Add(2 * time.Hour)
	req := createRequest("ACTIVE")
	req.ScheduleDate = &schedule

	resp, err := fx.svc.CreateNotification(req)
	require.NoError(t, err)

	assert.Equal(t, string(models.NotificationStatusScheduled), resp.Status)
	assert.Equal(t, 0, resp.SentCount)
	assert.Equal(t, 0, fx.observer.hits, "scheduled notifications are not published yet")
}

func TestCreateNotification_PastScheduleStaysDraft(t *testing.T) {
	fx := newNotificationFixture(t)

	schedule := fx.now.Add(-time.Minute)
	req := createRequest("NEW")
	req.ScheduleDate = &schedule

	resp, err := fx.svc.CreateNotification(req)
	require.NoError(t, err)
	assert.Equal(t, string(models.NotificationStatusDraft), resp.Status)
	assert.Equal(t, 0, fx.observer.hits)
}

func TestSendNewNotification_PublishesSavedRecord(t *testing.T) {
	fx := newNotificationFixture(t)

	resp, err := fx.svc.SendNewNotification(createRequest("ALL"))
	require.NoError(t, err)

	assert.Equal(t, string(models.NotificationStatusSent), resp.Status)
	assert.Equal(t, 1200, resp.SentCount)
	assert.Equal(t, 1, fx.observer.hits)
	assert.Equal(t, models.NotificationStatusSent, fx.observer.seenStatus, "observers receive the persisted SENT record")
	assert.Equal(t, 1200, fx.observer.seenCount)
}

func TestSendNewNotification_ObserverFailureSurfaces(t *testing.T) {
	fx := newNotificationFixture(t)
	fx.observer.err = errors.New("db write failed")

	_, err := fx.svc.SendNewNotification(createRequest("ALL"))
	require.Error(t, err)

	all, _ := fx.repo.FindAllActive()
	require.Len(t, all, 1)
	assert.Equal(t, models.NotificationStatusSent, all[0].Status, "the send is recorded before observers run")
	assert.Equal(t, 1200, all[0].SentCount)
}

func TestSendNotification_DraftThenAlreadySent(t *testing.T) {
	fx := newNotificationFixture(t)

	schedule := fx.now.Add(time.Hour)
	req := createRequest("PREMIUM")
	req.ScheduleDate = &schedule
	created, err := fx.svc.CreateNotification(req)
	require.NoError(t, err)

	sent, err := fx.svc.SendNotification(created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.NotificationStatusSent), sent.Status)
	assert.Equal(t, 1200, sent.SentCount)

	_, err = fx.svc.SendNotification(created.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpdateNotification_MissingIs404(t *testing.T) {
	fx := newNotificationFixture(t)

	_, err := fx.svc.UpdateNotification("ghost", &dto.UpdateNotificationRequest{Title: "x"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUpdateNotification_OverwritesAllFields(t *testing.T) {
	fx := newNotificationFixture(t)

	schedule := fx.now.Add(time.Hour)
	req := createRequest("ALL")
	req.ScheduleDate = &schedule
	created, err := fx.svc.CreateNotification(req)
	require.NoError(t, err)
	require.Equal(t, string(models.NotificationStatusScheduled), created.Status)

	updated, err := fx.svc.UpdateNotification(created.ID, &dto.UpdateNotificationRequest{
		Title:          "Maintenance rescheduled",
		Message:        "The window moved to Sunday night.",
		Type:           string(models.NotificationTypeUpdate),
		Priority:       string(models.PriorityUrgent),
		TargetAudience: string(models.TargetActive),
	})
	require.NoError(t, err)

	assert.Equal(t, "Maintenance rescheduled", updated.Title)
	assert.Equal(t, string(models.NotificationTypeUpdate), updated.Type)
	assert.Equal(t, string(models.PriorityUrgent), updated.Priority)
	assert.Equal(t, string(models.TargetActive), updated.TargetAudience)
	assert.Nil(t, updated.ScheduleDate, "an omitted schedule date is cleared")
	assert.Equal(t, string(models.NotificationStatusDraft), updated.Status, "clearing the schedule demotes it back to draft")
}

func TestGetNotificationsByStatus_RejectsUnknown(t *testing.T) {
	fx := newNotificationFixture(t)

	_, err := fx.svc.GetNotificationsByStatus("ARCHIVED")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSearchNotifications(t *testing.T) {
	fx := newNotificationFixture(t)
	_, err := fx.svc.CreateNotification(createRequest("ALL"))
	require.NoError(t, err)

	hits, err := fx.svc.SearchNotifications("maintenance")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	misses, err := fx.svc.SearchNotifications("discount")
	require.NoError(t, err)
	assert.Empty(t, misses)
}

func TestGetStatistics_CountsByStatus(t *testing.T) {
	fx := newNotificationFixture(t)

	_, err := fx.svc.CreateNotification(createRequest("ALL"))
	require.NoError(t, err)

	_, err = fx.svc.SendNewNotification(createRequest("PREMIUM"))
	require.NoError(t, err)

	schedule := fx.now.Add(time.Hour)
	scheduled := createRequest("ACTIVE")
	scheduled.ScheduleDate = &schedule
	_, err = fx.svc.CreateNotification(scheduled)
	require.NoError(t, err)

	stats, err := fx.svc.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Sent)
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(1), stats.Draft)
}

func TestSendDueScheduled(t *testing.T) {
	fx := newNotificationFixture(t)

	soon := fx.now.Add(30 * time.Minute)
	later := fx.now.Add(48 * time.Hour)

	due := createRequest("ALL")
	due.ScheduleDate = &soon
	_, err := fx.svc.CreateNotification(due)
	require.NoError(t, err)

	notDue := createRequest("NEW")
	notDue.ScheduleDate = &later
	_, err = fx.svc.CreateNotification(notDue)
	require.NoError(t, err)

	// nothing due yet
	sent, err := fx.svc.SendDueScheduled()
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	fx.now = fx.now.Add(time.Hour)
	sent, err = fx.svc.SendDueScheduled()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	scheduled, err := fx.repo.FindActiveByStatus(models.NotificationStatusScheduled)
	require.NoError(t, err)
	assert.Len(t, scheduled, 1, "the far-future notification stays scheduled")
}

func TestDeleteNotification_MissingIs404(t *testing.T) {
	fx := newNotificationFixture(t)

	err := fx.svc.DeleteNotification("ghost")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
