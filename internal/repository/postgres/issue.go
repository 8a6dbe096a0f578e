package postgres

import (
	"context"
	"strconv"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const GET_ISSUES_MAX_LIMIT = 50

type issueRepo struct {
	db *pgxpool.Pool
}

func newIssueRepo(db *pgxpool.Pool) Issue {
	return &issueRepo{
		db: db,
	}
}

func (r *issueRepo) Create(ctx context.Context, issue model.Issue) error {
	_, err := r.db.Exec(
		ctx,
		`
		INSERT INTO issues(id, title, description, status, priority, created_by, assignee_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		issue.ID, issue.Title, issue.Description, issue.Status, issue.Priority, issue.CreatedBy, issue.AssigneeID, issue.CreatedAt, issue.UpdatedAt,
	)
	return err
}

func (r *issueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.QueryRow(
		ctx,
		`
		SELECT i.id, i.title, i.description, i.status, i.priority, i.created_by, i.assignee_id, i.created_at, i.updated_at
		FROM issues i
		WHERE i.id = $1
		`,
		id,
	).Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Status,
		&issue.Priority,
		&issue.CreatedBy,
		&issue.AssigneeID,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &issue, nil
}

func (r *issueRepo) GetAll(ctx context.Context, limit, offset int) ([]*model.Issue, error) {
	if limit > GET_ISSUES_MAX_LIMIT {
		limit = GET_ISSUES_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT i.id, i.title, i.description, i.status, i.priority, i.created_by, i.assignee_id, i.created_at, i.updated_at
		FROM issues i
		ORDER BY i.created_at DESC
		LIMIT $1
		OFFSET $2
		`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []*model.Issue
	for rows.Next() {
		var issue model.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.Title,
			&issue.Description,
			&issue.Status,
			&issue.Priority,
			&issue.CreatedBy,
			&issue.AssigneeID,
			&issue.CreatedAt,
			&issue.UpdatedAt,
		); err != nil {
			return nil, err
		}

		issues = append(issues, &issue)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return issues, nil
}

func (r *issueRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	query := "UPDATE issues SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = NOW() WHERE id = $" + strconv.Itoa(i) + " RETURNING id"
	args = append(args, id)

	var returnedID uuid.UUID
	err := r.db.QueryRow(ctx, query, args...).Scan(&returnedID)
	if err == pgx.ErrNoRows {
		return nil
	}
	return err
}

func (r *issueRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM issues WHERE id = $1", id)
	return err
}
