package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID   `json:"id"`
	IssueID   uuid.UUID   `json:"issue_id"`
	CreatedBy uuid.UUID   `json:"created_by"`
	Content   string      `json:"content"`
	Mentions  []uuid.UUID `json:"mentions"`
	CreatedAt time.Time   `json:"created_at"`
}
