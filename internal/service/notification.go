package service

import (
	"context"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/dto"
	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/repository"
	"github.com/IssueTrackerApp/issue-service/internal/repository/redisrepo"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	GET_NOTIFICATIONS_MAX_LIMIT = 100
	UNREAD_COUNT_CACHE_TTL      = time.Minute * 2
)

type notificationService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	rdb       *redis.Client
	scheduler gocron.Scheduler
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client) Notification {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	return &notificationService{
		logger:    logger,
		repo:      repo,
		rdb:       rdb,
		scheduler: scheduler,
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.NotificationList, error) {
	if page < 1 || limit < 1 || limit > GET_NOTIFICATIONS_MAX_LIMIT {
		return nil, ErrInvalidArgument
	}

	offset := (page - 1) * limit
	notifications, err := s.repo.Postgres.Notification.GetUserNotifications(ctx, userID, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get user(%s)'s notifications from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if notifications == nil {
		notifications = []*model.Notification{}
	}

	total, err := s.repo.Postgres.Notification.CountByRecipient(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count user(%s)'s notifications: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	unreadCount, err := s.unreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.NotificationList{
		Notifications: notifications,
		Total:         total,
		Page:          page,
		Limit:         limit,
		TotalPages:    totalPages,
		UnreadCount:   unreadCount,
	}, nil
}

// unreadCount serves from the redis cache when possible. Cache failures fall
// through to postgres so a dead cache never breaks the listing.
func (s *notificationService) unreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := redisrepo.UserUnreadCountKey(userID.String())

	cached, err := redisrepo.Get[int64](s.rdb, ctx, key)
	if err == nil {
		return *cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s unread count from redis: %s", userID.String(), err.Error())
	}

	count, err := s.repo.Postgres.Notification.CountUnreadByRecipient(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count user(%s)'s unread notifications: %s", userID.String(), err.Error())
		return 0, ErrInternal
	}

	if err := redisrepo.SetJSON(s.rdb, ctx, key, count, UNREAD_COUNT_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s)'s unread count in redis cache: %s", userID.String(), err.Error())
	}

	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*model.Notification, error) {
	notification, err := s.repo.Postgres.Notification.FindByID(ctx, notificationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get notification(%s): %s", notificationID.String(), err.Error())
		return nil, ErrInternal
	}

	if notification.RecipientID != userID {
		return nil, ErrForbidden
	}

	if notification.Read {
		return notification, nil
	}

	updated, err := s.repo.Postgres.Notification.MarkRead(ctx, notificationID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to mark notification(%s) as read: %s", notificationID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateUnreadCount(ctx, userID)

	return updated, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Postgres.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to mark all notifications as read for user(%s): %s", userID.String(), err.Error())
		return 0, ErrInternal
	}

	s.invalidateUnreadCount(ctx, userID)

	return count, nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if err := redisrepo.Del(s.rdb, ctx, redisrepo.UserUnreadCountKey(userID.String())); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate unread count cache for user(%s): %s", userID.String(), err.Error())
	}
}

func (s *notificationService) newDeliveryStatsJob() {
	s.scheduler.NewJob(gocron.DurationJob(time.Hour*12), gocron.NewTask(func(ctx context.Context) {
		count, err := s.repo.Postgres.Notification.CountCreatedSince(ctx, time.Now().Add(-time.Hour*24))
		if err != nil {
			s.logger.Sugar().Errorf("failed to count recently delivered notifications: %s", err.Error())
			return
		}

		s.logger.Sugar().Infof("delivered %d notifications in the last 24h", count)
	}))
}

func (s *notificationService) StartJobs() {
	s.newDeliveryStatsJob()

	s.scheduler.Start()
}
