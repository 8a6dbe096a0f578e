package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeIssueCreated    NotificationType = "issue_created"
	NotificationTypeIssueAssigned   NotificationType = "issue_assigned"
	NotificationTypeIssueUpdated    NotificationType = "issue_updated"
	NotificationTypeStatusChanged   NotificationType = "status_changed"
	NotificationTypePriorityChanged NotificationType = "priority_changed"
	NotificationTypeCommentAdded    NotificationType = "comment_added"
	NotificationTypeMentioned       NotificationType = "mentioned"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeIssueCreated,
		NotificationTypeIssueAssigned,
		NotificationTypeIssueUpdated,
		NotificationTypeStatusChanged,
		NotificationTypePriorityChanged,
		NotificationTypeCommentAdded,
		NotificationTypeMentioned:
		return true
	}
	return false
}

type Notification struct {
	ID          uuid.UUID        `json:"_id"`
	RecipientID uuid.UUID        `json:"recipientId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	Link        *string          `json:"link,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
