package service

import (
	"context"
	"strings"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/dto"
	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	delivery *deliveryService
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, delivery *deliveryService) Comment {
	return &commentService{
		logger:   logger,
		repo:     repo,
		delivery: delivery,
	}
}

func (s *commentService) Create(ctx context.Context, actor *model.User, issueID uuid.UUID, input dto.CreateComment) (*model.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrInvalidArgument
	}

	issue, err := s.repo.Postgres.Issue.FindByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get issue(%s): %s", issueID.String(), err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		ID:        uuid.New(),
		IssueID:   issueID,
		CreatedBy: actor.ID,
		Content:   content,
		Mentions:  input.Mentions,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Postgres.Comment.Create(ctx, comment); err != nil {
		s.logger.Sugar().Errorf("failed to create comment on issue(%s) by user(%s): %s", issueID.String(), actor.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.delivery.Deliver(context.WithoutCancel(ctx), dispatchCommentAdded(actor, issue, &comment))

	return &comment, nil
}

func (s *commentService) GetByIssueID(ctx context.Context, issueID uuid.UUID, limit, offset int) ([]*model.Comment, error) {
	if _, err := s.repo.Postgres.Issue.FindByID(ctx, issueID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get issue(%s): %s", issueID.String(), err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Postgres.Comment.GetByIssueID(ctx, issueID, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get comments for issue(%s): %s", issueID.String(), err.Error())
		return nil, ErrInternal
	}

	if comments == nil {
		comments = []*model.Comment{}
	}

	return comments, nil
}
