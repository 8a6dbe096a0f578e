package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in_progress"
	IssueStatusResolved   = "resolved"
	IssueStatusClosed     = "closed"
)

const (
	IssuePriorityLow      = "low"
	IssuePriorityMedium   = "medium"
	IssuePriorityHigh     = "high"
	IssuePriorityCritical = "critical"
)

type Issue struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func IsValidIssueStatus(status string) bool {
	switch status {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

func IsValidIssuePriority(priority string) bool {
	switch priority {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return true
	}
	return false
}
