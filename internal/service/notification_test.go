package service

import (
	"context"
	"testing"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedNotification(repo *fakeNotificationRepo, recipientID uuid.UUID, read bool, createdAt time.Time) model.Notification {
	n := model.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       "New issue",
		Description: "someone created an issue",
		Type:        model.NotificationTypeIssueCreated,
		Read:        read,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	repo.notifications = append(repo.notifications, n)
	return n
}

func newNotificationTestService(notifications *fakeNotificationRepo) Notification {
	repo := newTestRepo(newFakeUserRepo(), nil, nil, notifications)
	return newNotificationService(zap.NewNop(), repo, newTestRedis())
}

func TestGetUserNotifications_Pagination(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	other := newTestUser("bob")
	notifications := &fakeNotificationRepo{}

	base := time.Now().UTC().Add(-time.Hour)
	var seeded []model.Notification
	for i := 0; i < 5; i++ {
		seeded = append(seeded, seedNotification(notifications, user.ID, i < 2, base.Add(time.Duration(i)*time.Minute)))
	}
	seedNotification(notifications, other.ID, false, base)

	s := newNotificationTestService(notifications)

	list, err := s.GetUserNotifications(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, int64(3), list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.Limit)
	require.Len(t, list.Notifications, 2)
	// Newest first.
	assert.Equal(t, seeded[4].ID, list.Notifications[0].ID)
	assert.Equal(t, seeded[3].ID, list.Notifications[1].ID)

	// Concatenating every page reproduces the full descending set.
	var collected []uuid.UUID
	for page := 1; page <= list.TotalPages; page++ {
		pageList, err := s.GetUserNotifications(ctx, user.ID, page, 2)
		require.NoError(t, err)
		for _, n := range pageList.Notifications {
			collected = append(collected, n.ID)
		}
	}
	assert.Equal(t, []uuid.UUID{seeded[4].ID, seeded[3].ID, seeded[2].ID, seeded[1].ID, seeded[0].ID}, collected)
}

func TestGetUserNotifications_InvalidArguments(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	s := newNotificationTestService(&fakeNotificationRepo{})

	for _, tc := range []struct {
		name  string
		page  int
		limit int
	}{
		{"zero page", 0, 10},
		{"negative page", -1, 10},
		{"zero limit", 1, 0},
		{"limit over max", 1, 101},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.GetUserNotifications(ctx, user.ID, tc.page, tc.limit)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestGetUserNotifications_EmptyPage(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	s := newNotificationTestService(&fakeNotificationRepo{})

	list, err := s.GetUserNotifications(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, list.Notifications)
	assert.Empty(t, list.Notifications)
	assert.Equal(t, int64(0), list.Total)
	assert.Equal(t, 0, list.TotalPages)
	assert.Equal(t, int64(0), list.UnreadCount)
}

func TestMarkRead_NotFound(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	s := newNotificationTestService(&fakeNotificationRepo{})

	_, err := s.MarkRead(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRead_Forbidden(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser("alice")
	intruder := newTestUser("bob")
	notifications := &fakeNotificationRepo{}
	n := seedNotification(notifications, owner.ID, false, time.Now().UTC())

	s := newNotificationTestService(notifications)

	_, err := s.MarkRead(ctx, intruder.ID, n.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	notifications := &fakeNotificationRepo{}
	n := seedNotification(notifications, user.ID, false, time.Now().UTC().Add(-time.Minute))

	s := newNotificationTestService(notifications)

	first, err := s.MarkRead(ctx, user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, first.Read)

	second, err := s.MarkRead(ctx, user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, second.Read)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestMarkAllRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("alice")
	notifications := &fakeNotificationRepo{}
	now := time.Now().UTC()
	seedNotification(notifications, user.ID, false, now)
	seedNotification(notifications, user.ID, false, now.Add(time.Second))
	seedNotification(notifications, user.ID, true, now.Add(2*time.Second))

	s := newNotificationTestService(notifications)

	count, err := s.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = s.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
