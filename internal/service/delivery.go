package service

import (
	"context"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/repository"
	"github.com/IssueTrackerApp/issue-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DELIVERY_BATCH_SIZE = 1000

type deliveryService struct {
	logger *zap.Logger
	repo   *repository.Repository
	rdb    *redis.Client
}

func newDeliveryService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client) *deliveryService {
	return &deliveryService{
		logger: logger,
		repo:   repo,
		rdb:    rdb,
	}
}

// Deliver persists dispatched notifications best-effort. Unknown recipients
// are skipped, every failure is logged and swallowed: the business write that
// triggered the dispatch has already committed and must not be failed here.
func (s *deliveryService) Deliver(ctx context.Context, notifications []model.Notification) {
	if len(notifications) == 0 {
		return
	}

	now := time.Now().UTC()
	known := make(map[uuid.UUID]bool, len(notifications))
	valid := make([]model.Notification, 0, len(notifications))

	for _, n := range notifications {
		if !n.Type.Valid() {
			s.logger.Sugar().Errorf("skipping notification with unknown type(%s) for recipient(%s)", n.Type, n.RecipientID.String())
			continue
		}

		exists, checked := known[n.RecipientID]
		if !checked {
			_, err := s.repo.Postgres.User.FindByID(ctx, n.RecipientID)
			if err != nil && err != pgx.ErrNoRows {
				s.logger.Sugar().Errorf("failed to verify notification recipient(%s): %s", n.RecipientID.String(), err.Error())
			}
			exists = err == nil
			known[n.RecipientID] = exists
		}
		if !exists {
			s.logger.Sugar().Warnf("skipping notification for unknown recipient(%s)", n.RecipientID.String())
			continue
		}

		n.ID = uuid.New()
		n.Read = false
		n.CreatedAt = now
		n.UpdatedAt = now
		valid = append(valid, n)
	}

	if len(valid) == 0 {
		return
	}

	if err := s.repo.Postgres.Notification.CreateBatched(ctx, valid, DELIVERY_BATCH_SIZE); err != nil {
		s.logger.Sugar().Errorf("failed to deliver %d notifications: %s", len(valid), err.Error())
		return
	}

	for id := range known {
		if !known[id] {
			continue
		}
		if err := redisrepo.Del(s.rdb, ctx, redisrepo.UserUnreadCountKey(id.String())); err != nil {
			s.logger.Sugar().Errorf("failed to invalidate unread count cache for user(%s): %s", id.String(), err.Error())
		}
	}
}
