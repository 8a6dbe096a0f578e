package postgres

import (
	"context"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const GET_COMMENTS_MAX_LIMIT = 50

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO comments(id, issue_id, created_by, content, mentions, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		comment.ID, comment.IssueID, comment.CreatedBy, comment.Content, comment.Mentions, comment.CreatedAt,
	)
	return err
}

func (r *commentRepo) GetByIssueID(ctx context.Context, issueID uuid.UUID, limit, offset int) ([]*model.Comment, error) {
	if limit > GET_COMMENTS_MAX_LIMIT {
		limit = GET_COMMENTS_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT c.id, c.created_by, c.content, c.mentions, c.created_at
		FROM comments c
		WHERE c.issue_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2
		OFFSET $3
		`,
		issueID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.CreatedBy, &comment.Content, &comment.Mentions, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comment.IssueID = issueID

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
