package dto

import "github.com/IssueTrackerApp/issue-service/internal/model"

type NotificationList struct {
	Notifications []*model.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
	TotalPages    int                   `json:"totalPages"`
	UnreadCount   int64                 `json:"unreadCount"`
}
