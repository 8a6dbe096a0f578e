package service

import (
	"context"

	"github.com/IssueTrackerApp/issue-service/internal/dto"
	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/rabbitmq"
	"github.com/IssueTrackerApp/issue-service/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListAllExcept(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	StartCreating(ctx context.Context)
	StartUpdating(ctx context.Context)
}

type Issue interface {
	Create(ctx context.Context, actor *model.User, input dto.CreateIssue) (*model.Issue, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)
	GetAll(ctx context.Context, limit, offset int) ([]*model.Issue, error)
	UpdateByID(ctx context.Context, actor *model.User, id uuid.UUID, updates map[string]interface{}) (*model.Issue, error)
	DeleteByID(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, actor *model.User, issueID uuid.UUID, input dto.CreateComment) (*model.Comment, error)
	GetByIssueID(ctx context.Context, issueID uuid.UUID, limit, offset int) ([]*model.Comment, error)
}

type Notification interface {
	GetUserNotifications(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.NotificationList, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	StartJobs()
}

type Service struct {
	User
	Issue
	Comment
	Notification
}

func New(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, rabbitmq *rabbitmq.MQConn) *Service {
	delivery := newDeliveryService(logger, repo, rdb)

	return &Service{
		User:         newUserService(logger, repo, rabbitmq),
		Issue:        newIssueService(logger, repo, delivery),
		Comment:      newCommentService(logger, repo, delivery),
		Notification: newNotificationService(logger, repo, rdb),
	}
}
