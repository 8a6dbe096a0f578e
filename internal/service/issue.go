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

type issueService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	delivery *deliveryService
}

func newIssueService(logger *zap.Logger, repo *repository.Repository, delivery *deliveryService) Issue {
	return &issueService{
		logger:   logger,
		repo:     repo,
		delivery: delivery,
	}
}

func (s *issueService) Create(ctx context.Context, actor *model.User, input dto.CreateIssue) (*model.Issue, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidArgument
	}

	status := input.Status
	if status == "" {
		status = model.IssueStatusOpen
	}
	if !model.IsValidIssueStatus(status) {
		return nil, ErrInvalidArgument
	}

	priority := input.Priority
	if priority == "" {
		priority = model.IssuePriorityMedium
	}
	if !model.IsValidIssuePriority(priority) {
		return nil, ErrInvalidArgument
	}

	if input.AssigneeID != nil {
		if _, err := s.repo.Postgres.User.FindByID(ctx, *input.AssigneeID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrInvalidArgument
			}
			s.logger.Sugar().Errorf("failed to verify assignee(%s): %s", input.AssigneeID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	now := time.Now().UTC()
	issue := model.Issue{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
		CreatedBy:   actor.ID,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Postgres.Issue.Create(ctx, issue); err != nil {
		s.logger.Sugar().Errorf("failed to create issue by user(%s): %s", actor.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.notifyCreated(ctx, actor, &issue)

	return &issue, nil
}

// notifyCreated runs detached from the request lifetime: the issue is already
// committed, so dispatch failures only cost notifications.
func (s *issueService) notifyCreated(ctx context.Context, actor *model.User, issue *model.Issue) {
	ctx = context.WithoutCancel(ctx)

	recipients, err := s.repo.Postgres.User.GetAllIDsExcept(ctx, actor.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list broadcast recipients for issue(%s): %s", issue.ID.String(), err.Error())
		recipients = nil
	}

	s.delivery.Deliver(ctx, dispatchIssueCreated(actor, issue, recipients))
}

func (s *issueService) FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	issue, err := s.repo.Postgres.Issue.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get issue(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return issue, nil
}

func (s *issueService) GetAll(ctx context.Context, limit, offset int) ([]*model.Issue, error) {
	issues, err := s.repo.Postgres.Issue.GetAll(ctx, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get issues: %s", err.Error())
		return nil, ErrInternal
	}

	if issues == nil {
		issues = []*model.Issue{}
	}

	return issues, nil
}

// UpdateByID applies an untyped column update. Which notification branches
// fire depends on which keys are present in the payload, not on whether the
// carried values actually differ from the stored ones.
func (s *issueService) UpdateByID(ctx context.Context, actor *model.User, id uuid.UUID, updates map[string]interface{}) (*model.Issue, error) {
	before, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	colUpdates := map[string]interface{}{}
	changes := issueChanges{
		oldStatus:   before.Status,
		newStatus:   before.Status,
		oldPriority: before.Priority,
		newPriority: before.Priority,
		oldAssignee: before.AssigneeID,
		newAssignee: before.AssigneeID,
	}

	if raw, ok := updates["title"]; ok {
		title, ok := raw.(string)
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			return nil, ErrInvalidArgument
		}
		colUpdates["title"] = title
	}

	if raw, ok := updates["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return nil, ErrInvalidArgument
		}
		colUpdates["description"] = strings.TrimSpace(description)
	}

	if raw, ok := updates["status"]; ok {
		changes.statusSet = true
		status, ok := raw.(string)
		if !ok || !model.IsValidIssueStatus(status) {
			return nil, ErrInvalidArgument
		}
		changes.newStatus = status
		colUpdates["status"] = status
	}

	if raw, ok := updates["priority"]; ok {
		changes.prioritySet = true
		priority, ok := raw.(string)
		if !ok || !model.IsValidIssuePriority(priority) {
			return nil, ErrInvalidArgument
		}
		changes.newPriority = priority
		colUpdates["priority"] = priority
	}

	if raw, ok := updates["assignee"]; ok {
		changes.assigneeSet = true
		if raw == nil {
			changes.newAssignee = nil
			colUpdates["assignee_id"] = nil
		} else {
			assigneeString, ok := raw.(string)
			if !ok {
				return nil, ErrInvalidArgument
			}
			assigneeID, err := uuid.Parse(assigneeString)
			if err != nil {
				return nil, ErrInvalidArgument
			}
			if _, err := s.repo.Postgres.User.FindByID(ctx, assigneeID); err != nil {
				if err == pgx.ErrNoRows {
					return nil, ErrInvalidArgument
				}
				s.logger.Sugar().Errorf("failed to verify assignee(%s): %s", assigneeID.String(), err.Error())
				return nil, ErrInternal
			}
			changes.newAssignee = &assigneeID
			colUpdates["assignee_id"] = assigneeID
		}
	}

	if len(colUpdates) == 0 {
		return before, nil
	}

	if err := s.repo.Postgres.Issue.UpdateByID(ctx, id, colUpdates); err != nil {
		s.logger.Sugar().Errorf("failed to update issue(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	after := *before
	if title, ok := colUpdates["title"].(string); ok {
		after.Title = title
	}
	if description, ok := colUpdates["description"].(string); ok {
		after.Description = description
	}
	after.Status = changes.newStatus
	after.Priority = changes.newPriority
	after.AssigneeID = changes.newAssignee
	after.UpdatedAt = time.Now().UTC()

	s.delivery.Deliver(context.WithoutCancel(ctx), dispatchIssueUpdated(actor, &after, changes))

	return &after, nil
}

func (s *issueService) DeleteByID(ctx context.Context, actor *model.User, id uuid.UUID) error {
	issue, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if issue.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Issue.DeleteByID(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete issue(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}
