package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := "INSERT INTO notifications(id, recipient_id, title, description, type, read, link, created_at, updated_at) VALUES "
	values := []interface{}{}
	counter := 1

	for _, n := range notifications {
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d),", counter, counter+1, counter+2, counter+3, counter+4, counter+5, counter+6, counter+7, counter+8)
		values = append(values, n.ID, n.RecipientID, n.Title, n.Description, n.Type, n.Read, n.Link, n.CreatedAt, n.UpdatedAt)
		counter += 9
	}

	query = query[:len(query)-1]
	_, err := r.db.Exec(ctx, query, values...)
	return err
}

func (r *notificationRepo) CreateBatched(ctx context.Context, notifications []model.Notification, batchSize int) error {
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

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.QueryRow(
		ctx,
		`
		SELECT n.id, n.recipient_id, n.title, n.description, n.type, n.read, n.link, n.created_at, n.updated_at
		FROM notifications n
		WHERE n.id = $1
		`,
		id,
	).Scan(
		&n.ID,
		&n.RecipientID,
		&n.Title,
		&n.Description,
		&n.Type,
		&n.Read,
		&n.Link,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *notificationRepo) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT n.id, n.title, n.description, n.type, n.read, n.link, n.created_at, n.updated_at
		FROM notifications n
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Type, &n.Read, &n.Link, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.RecipientID = userID

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) CountByRecipient(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE recipient_id = $1", userID).Scan(&count)
	return count, err
}

func (r *notificationRepo) CountUnreadByRecipient(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = false", userID).Scan(&count)
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.QueryRow(
		ctx,
		`
		UPDATE notifications
		SET read = true, updated_at = NOW()
		WHERE id = $1
		RETURNING id, recipient_id, title, description, type, read, link, created_at, updated_at
		`,
		id,
	).Scan(
		&n.ID,
		&n.RecipientID,
		&n.Title,
		&n.Description,
		&n.Type,
		&n.Read,
		&n.Link,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, "UPDATE notifications SET read = true, updated_at = NOW() WHERE recipient_id = $1 AND read = false", userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *notificationRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE created_at >= $1", since).Scan(&count)
	return count, err
}
