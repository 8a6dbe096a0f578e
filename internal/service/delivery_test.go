package service

import (
	"context"
	"testing"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeliver_SkipsUnknownRecipients(t *testing.T) {
	ctx := context.Background()
	known := newTestUser("alice")
	users := newFakeUserRepo(*known)
	notifications := &fakeNotificationRepo{}

	delivery := newDeliveryService(zap.NewNop(), newTestRepo(users, nil, nil, notifications), newTestRedis())
	delivery.Deliver(ctx, []model.Notification{
		{RecipientID: known.ID, Title: "New issue", Description: "x", Type: model.NotificationTypeIssueCreated},
		{RecipientID: uuid.New(), Title: "New issue", Description: "x", Type: model.NotificationTypeIssueCreated},
	})

	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, known.ID, notifications.notifications[0].RecipientID)
}

func TestDeliver_StoreFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	known := newTestUser("alice")
	users := newFakeUserRepo(*known)
	notifications := &fakeNotificationRepo{failCreate: true}

	delivery := newDeliveryService(zap.NewNop(), newTestRepo(users, nil, nil, notifications), newTestRedis())
	delivery.Deliver(ctx, []model.Notification{
		{RecipientID: known.ID, Title: "New issue", Description: "x", Type: model.NotificationTypeIssueCreated},
	})

	assert.Empty(t, notifications.notifications)
}

func TestDeliver_AssignsIDsAndDefaults(t *testing.T) {
	ctx := context.Background()
	known := newTestUser("alice")
	users := newFakeUserRepo(*known)
	notifications := &fakeNotificationRepo{}

	delivery := newDeliveryService(zap.NewNop(), newTestRepo(users, nil, nil, notifications), newTestRedis())
	delivery.Deliver(ctx, []model.Notification{
		{RecipientID: known.ID, Title: "New issue", Description: "x", Type: model.NotificationTypeIssueCreated, Read: true},
	})

	require.Len(t, notifications.notifications, 1)
	stored := notifications.notifications[0]
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.False(t, stored.Read)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
}

func TestDeliver_SkipsUnknownType(t *testing.T) {
	ctx := context.Background()
	known := newTestUser("alice")
	users := newFakeUserRepo(*known)
	notifications := &fakeNotificationRepo{}

	delivery := newDeliveryService(zap.NewNop(), newTestRepo(users, nil, nil, notifications), newTestRedis())
	delivery.Deliver(ctx, []model.Notification{
		{RecipientID: known.ID, Title: "?", Description: "x", Type: model.NotificationType("bogus")},
	})

	assert.Empty(t, notifications.notifications)
}
