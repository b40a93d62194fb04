package notifier

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurancelk_backend/internal/email"
	"insurancelk_backend/internal/logger"
	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
)

type fakeUserNotificationRepo struct {
	rows []models.UserNotification
}

var _ repositories.UserNotificationRepository = (*fakeUserNotificationRepo)(nil)

func (f *fakeUserNotificationRepo) Create(n *models.UserNotification) error {
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeUserNotificationRepo) FindByID(id string) (*models.UserNotification, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, repositories.ErrUserNotificationNotFound
}

func (f *fakeUserNotificationRepo) ExistsForUser(adminNotificationID, userID string) (bool, error) {
	for _, row := range f.rows {
		if row.AdminNotificationID == adminNotificationID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserNotificationRepo) FindByUserID(userID string) ([]models.UserNotification, error) {
	var out []models.UserNotification
	for _, row := range f.rows {
		if row.UserID == userID && !row.IsDeleted {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeUserNotificationRepo) MarkAsRead(id string) error    { return nil }
func (f *fakeUserNotificationRepo) MarkAllAsRead(u string) error  { return nil }
func (f *fakeUserNotificationRepo) Archive(id string) error       { return nil }
func (f *fakeUserNotificationRepo) Delete(id string) error        { return nil }
func (f *fakeUserNotificationRepo) CountUnread(string) (int64, error) {
	return 0, nil
}

func sourceNotification(target models.TargetAudience) *models.AdminNotification {
	n := &models.AdminNotification{
		Title:    "Planned maintenance",
		Message:  "The portal will be unavailable on Saturday night.",
		Type:     models.NotificationTypeMaintenance,
		Priority: models.PriorityHigh,
		Target:   target,
	}
	n.ID = "n1"
	return n
}

func TestDatabaseObserver_FansOutToWholeAudience(t *testing.T) {
	repo := &fakeUserNotificationRepo{}
	observer := NewDatabaseObserver(NewStaticDirectory(), repo)

	require.NoError(t, observer.Update(sourceNotification(models.TargetAll)))
	assert.Len(t, repo.rows, 5)

	for _, row := range repo.rows {
		assert.Equal(t, "n1", row.AdminNotificationID)
		assert.Equal(t, "Planned maintenance", row.Title)
		assert.NotEmpty(t, row.Data)
	}
}

func TestDatabaseObserver_AudienceSegments(t *testing.T) {
	cases := []struct {
		target models.TargetAudience
		users  []string
	}{
		{models.TargetActive, []string{"u1", "u2", "u3"}},
		{models.TargetInactive, []string{"u4", "u5"}},
		{models.TargetPremium, []string{"u1", "u3"}},
		{models.TargetNew, []string{"u5"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.target), func(t *testing.T) {
			repo := &fakeUserNotificationRepo{}
			observer := NewDatabaseObserver(NewStaticDirectory(), repo)

			require.NoError(t, observer.Update(sourceNotification(tc.target)))

			var got []string
			for _, row := range repo.rows {
				got = append(got, row.UserID)
			}
			assert.Equal(t, tc.users, got)
		})
	}
}

func TestDatabaseObserver_RepublishDoesNotDuplicate(t *testing.T) {
	repo := &fakeUserNotificationRepo{}
	observer := NewDatabaseObserver(NewStaticDirectory(), repo)
	notification := sourceNotification(models.TargetPremium)

	require.NoError(t, observer.Update(notification))
	require.NoError(t, observer.Update(notification))

	assert.Len(t, repo.rows, 2, "one row per recipient regardless of publish count")
}

func TestDatabaseObserver_UnknownAudienceFails(t *testing.T) {
	repo := &fakeUserNotificationRepo{}
	observer := NewDatabaseObserver(NewStaticDirectory(), repo)

	err := observer.Update(sourceNotification(models.TargetAudience("VIP")))
	assert.Error(t, err)
	assert.Empty(t, repo.rows)
}

func TestLogObserver_RecordsIDTypeAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger.SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { logger.SetLogger(nil) })

	notification := sourceNotification(models.TargetAll)
	notification.Status = models.NotificationStatusSent
	notification.SentCount = 1200

	require.NoError(t, NewLogObserver().Update(notification))

	record := buf.String()
	assert.Contains(t, record, `"notification_id":"n1"`)
	assert.Contains(t, record, `"type":"MAINTENANCE"`)
	assert.Contains(t, record, `"status":"SENT"`)
}

type countingProvider struct {
	sent []string
	err  error
}

func (p *countingProvider) Send(e *email.Email) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, e.To...)
	return nil
}

func (p *countingProvider) Validate() error { return nil }
func (p *countingProvider) Close() error    { return nil }

func TestEmailObserver_SendsToEveryRecipient(t *testing.T) {
	provider := &countingProvider{}
	observer := NewEmailObserver(NewStaticDirectory(), provider)

	require.NoError(t, observer.Update(sourceNotification(models.TargetInactive)))
	assert.Equal(t, []string{"dilani.j@example.com", "tharindu.b@example.com"}, provider.sent)
}

func TestEmailObserver_ProviderFailureSurfaces(t *testing.T) {
	provider := &countingProvider{err: errors.New("connection refused")}
	observer := NewEmailObserver(NewStaticDirectory(), provider)

	assert.Error(t, observer.Update(sourceNotification(models.TargetNew)))
}
