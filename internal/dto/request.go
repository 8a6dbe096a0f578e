package dto

import "github.com/google/uuid"

type CreateIssue struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *uuid.UUID `json:"assignee"`
}

type CreateComment struct {
	Content  string      `json:"content" binding:"required"`
	Mentions []uuid.UUID `json:"mentions"`
}
