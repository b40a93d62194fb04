package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/pkg/apperrors"
)

type fakeInboxRepo struct {
	rows map[string]*models.UserNotification
}

var _ repositories.UserNotificationRepository = (*fakeInboxRepo)(nil)

func newFakeInboxRepo() *fakeInboxRepo {
	return &fakeInboxRepo{rows: make(map[string]*models.UserNotification)}
}

func (f *fakeInboxRepo) addRow(id, userID string, read bool) {
	n := &models.UserNotification{
		UserID:              userID,
		AdminNotificationID: "src-" + id,
		Title:               "Renewal reminder",
		Message:             "Your premium for April is due.",
		Type:                models.NotificationTypeGeneral,
		Priority:            models.PriorityMedium,
		IsRead:              read,
	}
	n.ID = id
	f.rows[id] = n
}

func (f *fakeInboxRepo) Create(n *models.UserNotification) error {
	f.rows[n.ID] = n
	return nil
}

func (f *fakeInboxRepo) FindByID(id string) (*models.UserNotification, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrUserNotificationNotFound
	}
	return n, nil
}

func (f *fakeInboxRepo) ExistsForUser(adminNotificationID, userID string) (bool, error) {
	return false, nil
}

func (f *fakeInboxRepo) FindByUserID(userID string) ([]models.UserNotification, error) {
	var out []models.UserNotification
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsDeleted {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeInboxRepo) MarkAsRead(id string) error {
	if n, ok := f.rows[id]; ok {
		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
	}
	return nil
}

func (f *fakeInboxRepo) MarkAllAsRead(userID string) error {
	for _, n := range f.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeInboxRepo) Archive(id string) error {
	if n, ok := f.rows[id]; ok {
		n.IsArchived = true
	}
	return nil
}

func (f *fakeInboxRepo) Delete(id string) error {
	if n, ok := f.rows[id]; ok {
		n.IsDeleted = true
	}
	return nil
}

func (f *fakeInboxRepo) CountUnread(userID string) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead && !n.IsDeleted {
			count++
		}
	}
	return count, nil
}

func TestUserNotifications_ReadFlow(t *testing.T) {
	repo := newFakeInboxRepo()
	repo.addRow("un-1", "u1", false)
	repo.addRow("un-2", "u1", false)
	repo.addRow("un-3", "u2", false)

	svc := NewUserNotificationService(repo)

	count, err := svc.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAsRead("u1", "un-1"))
	count, err = svc.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAllAsRead("u1"))
	count, err = svc.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// other users' rows are untouched
	count, err = svc.GetUnreadCount("u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserNotifications_OwnershipEnforced(t *testing.T) {
	repo := newFakeInboxRepo()
	repo.addRow("un-1", "u1", false)

	svc := NewUserNotificationService(repo)

	err := svc.MarkAsRead("u2", "un-1")
	assert.ErrorIs(t, err, apperrors.ErrNotificationAccessDenied)

	err = svc.DeleteNotification("u2", "un-1")
	assert.ErrorIs(t, err, apperrors.ErrNotificationAccessDenied)
}

func TestUserNotifications_MissingRowIs404(t *testing.T) {
	repo := newFakeInboxRepo()
	svc := NewUserNotificationService(repo)

	err := svc.MarkAsRead("u1", "ghost")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUserNotifications_DeleteHidesFromInbox(t *testing.T) {
	repo := newFakeInboxRepo()
	repo.addRow("un-1", "u1", false)
	repo.addRow("un-2", "u1", false)

	svc := NewUserNotificationService(repo)
	require.NoError(t, svc.DeleteNotification("u1", "un-1"))

	inbox, err := svc.GetUserNotifications("u1")
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
	assert.Equal(t, "un-2", inbox[0].ID)
}
