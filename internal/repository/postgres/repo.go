package postgres

import (
	"context"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	GetAllIDsExcept(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type Issue interface {
	Create(ctx context.Context, issue model.Issue) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)
	GetAll(ctx context.Context, limit, offset int) ([]*model.Issue, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) error
	GetByIssueID(ctx context.Context, issueID uuid.UUID, limit, offset int) ([]*model.Comment, error)
}

type Notification interface {
	CreateBatch(ctx context.Context, notifications []model.Notification) error
	CreateBatched(ctx context.Context, notifications []model.Notification, batchSize int) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	CountByRecipient(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnreadByRecipient(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type PGRepo struct {
	User
	Issue
	Comment
	Notification
}

func New(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{
		User:         newUserRepo(db),
		Issue:        newIssueRepo(db),
		Comment:      newCommentRepo(db),
		Notification: newNotificationRepo(db),
	}
}
