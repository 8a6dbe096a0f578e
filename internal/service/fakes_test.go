package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/repository"
	"github.com/IssueTrackerApp/issue-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]model.User)}
	for _, user := range users {
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) GetAllIDsExcept(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for userID := range r.users {
		if userID != id {
			ids = append(ids, userID)
		}
	}
	return ids, nil
}

type fakeIssueRepo struct {
	mu     sync.Mutex
	issues map[uuid.UUID]model.Issue
}

func newFakeIssueRepo(issues ...model.Issue) *fakeIssueRepo {
	r := &fakeIssueRepo{issues: make(map[uuid.UUID]model.Issue)}
	for _, issue := range issues {
		r.issues[issue.ID] = issue
	}
	return r
}

func (r *fakeIssueRepo) Create(_ context.Context, issue model.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issues[issue.ID] = issue
	return nil
}

func (r *fakeIssueRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &issue, nil
}

func (r *fakeIssueRepo) GetAll(_ context.Context, limit, offset int) ([]*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*model.Issue, 0, len(r.issues))
	for id := range r.issues {
		issue := r.issues[id]
		all = append(all, &issue)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeIssueRepo) UpdateByID(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil
	}
	if title, ok := updates["title"].(string); ok {
		issue.Title = title
	}
	if description, ok := updates["description"].(string); ok {
		issue.Description = description
	}
	if status, ok := updates["status"].(string); ok {
		issue.Status = status
	}
	if priority, ok := updates["priority"].(string); ok {
		issue.Priority = priority
	}
	if raw, ok := updates["assignee_id"]; ok {
		if raw == nil {
			issue.AssigneeID = nil
		} else if assigneeID, ok := raw.(uuid.UUID); ok {
			issue.AssigneeID = &assigneeID
		}
	}
	issue.UpdatedAt = time.Now().UTC()
	r.issues[id] = issue
	return nil
}

func (r *fakeIssueRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.issues, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []model.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, comment model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) GetByIssueID(_ context.Context, issueID uuid.UUID, limit, offset int) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []*model.Comment
	for i := range r.comments {
		if r.comments[i].IssueID == issueID {
			comment := r.comments[i]
			comments = append(comments, &comment)
		}
	}
	if offset >= len(comments) {
		return nil, nil
	}
	end := offset + limit
	if end > len(comments) {
		end = len(comments)
	}
	return comments[offset:end], nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
	failCreate    bool
}

func (r *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return pgx.ErrTxClosed
	}
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *fakeNotificationRepo) CreateBatched(ctx context.Context, notifications []model.Notification, batchSize int) error {
	for i := 0; i < len(notifications); i += batchSize {
		end := i + batchSize
		if end > len(notifications) {
			end = len(notifications)
		}
		if err := r.CreateBatch(ctx, notifications[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeNotificationRepo) GetUserNotifications(_ context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Notification
	for i := range r.notifications {
		if r.notifications[i].RecipientID == userID {
			n := r.notifications[i]
			all = append(all, &n)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeNotificationRepo) CountByRecipient(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.notifications {
		if r.notifications[i].RecipientID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) CountUnreadByRecipient(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.notifications {
		if r.notifications[i].RecipientID == userID && !r.notifications[i].Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			r.notifications[i].UpdatedAt = time.Now().UTC()
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.notifications {
		if r.notifications[i].RecipientID == userID && !r.notifications[i].Read {
			r.notifications[i].Read = true
			r.notifications[i].UpdatedAt = time.Now().UTC()
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.notifications {
		if !r.notifications[i].CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func newTestRepo(users *fakeUserRepo, issues *fakeIssueRepo, comments *fakeCommentRepo, notifications *fakeNotificationRepo) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PGRepo{
			User:         users,
			Issue:        issues,
			Comment:      comments,
			Notification: notifications,
		},
	}
}

// newTestRedis returns a client pointed at a closed port. Cache reads and
// writes fail fast and the services are expected to fall through to postgres.
func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func newTestUser(username string) *model.User {
	return &model.User{
		ID:       uuid.New(),
		Username: username,
	}
}
