package service

import (
	"fmt"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
)

// issueChanges describes which fields an update payload carried and the
// before/after values. A field counts as changed only when its key was
// present in the payload, regardless of whether the value differs.
type issueChanges struct {
	statusSet   bool
	prioritySet bool
	assigneeSet bool

	oldStatus   string
	newStatus   string
	oldPriority string
	newPriority string
	oldAssignee *uuid.UUID
	newAssignee *uuid.UUID
}

func issueLink(issueID uuid.UUID) *string {
	link := fmt.Sprintf("/issues/%s", issueID.String())
	return &link
}

// dispatchIssueCreated broadcasts to everyoneElse and additionally notifies
// the assignee, if one was set at creation. The actor never receives anything.
func dispatchIssueCreated(actor *model.User, issue *model.Issue, everyoneElse []uuid.UUID) []model.Notification {
	link := issueLink(issue.ID)
	description := fmt.Sprintf("%s created a new issue: %s", actor.Username, issue.Title)

	notifications := make([]model.Notification, 0, len(everyoneElse)+1)
	for _, id := range everyoneElse {
		if id == actor.ID {
			continue
		}

		notifications = append(notifications, model.Notification{
			RecipientID: id,
			Title:       "New issue",
			Description: description,
			Type:        model.NotificationTypeIssueCreated,
			Link:        link,
		})
	}

	if issue.AssigneeID != nil && *issue.AssigneeID != actor.ID {
		notifications = append(notifications, model.Notification{
			RecipientID: *issue.AssigneeID,
			Title:       "Issue assigned to you",
			Description: fmt.Sprintf("%s assigned %q to you", actor.Username, issue.Title),
			Type:        model.NotificationTypeIssueAssigned,
			Link:        link,
		})
	}

	return notifications
}

// dispatchIssueUpdated evaluates the status, priority and assignee branches
// independently; several may fire on one update. The general issue_updated
// notice fires only when none of those keys were present in the payload.
func dispatchIssueUpdated(actor *model.User, issue *model.Issue, changes issueChanges) []model.Notification {
	var notifications []model.Notification
	link := issueLink(issue.ID)

	// Assignee and creator, minus the actor, collapsed to one when equal.
	stakeholders := func() []uuid.UUID {
		var ids []uuid.UUID
		if issue.AssigneeID != nil && *issue.AssigneeID != actor.ID {
			ids = append(ids, *issue.AssigneeID)
		}
		if issue.CreatedBy != actor.ID && (issue.AssigneeID == nil || *issue.AssigneeID != issue.CreatedBy) {
			ids = append(ids, issue.CreatedBy)
		}
		return ids
	}

	if changes.statusSet && changes.newStatus != changes.oldStatus {
		description := fmt.Sprintf("%s changed the status of %q from %s to %s", actor.Username, issue.Title, changes.oldStatus, changes.newStatus)
		for _, id := range stakeholders() {
			notifications = append(notifications, model.Notification{
				RecipientID: id,
				Title:       "Issue status changed",
				Description: description,
				Type:        model.NotificationTypeStatusChanged,
				Link:        link,
			})
		}
	}

	if changes.prioritySet && changes.newPriority != changes.oldPriority {
		description := fmt.Sprintf("%s changed the priority of %q from %s to %s", actor.Username, issue.Title, changes.oldPriority, changes.newPriority)
		for _, id := range stakeholders() {
			notifications = append(notifications, model.Notification{
				RecipientID: id,
				Title:       "Issue priority changed",
				Description: description,
				Type:        model.NotificationTypePriorityChanged,
				Link:        link,
			})
		}
	}

	if changes.assigneeSet {
		switch {
		case changes.newAssignee != nil && (changes.oldAssignee == nil || *changes.oldAssignee != *changes.newAssignee):
			// The new assignee is notified even when the actor assigned
			// themselves; this branch carries no actor suppression.
			notifications = append(notifications, model.Notification{
				RecipientID: *changes.newAssignee,
				Title:       "Issue assigned to you",
				Description: fmt.Sprintf("%s assigned %q to you", actor.Username, issue.Title),
				Type:        model.NotificationTypeIssueAssigned,
				Link:        link,
			})
		case changes.newAssignee == nil && changes.oldAssignee != nil:
			if *changes.oldAssignee != actor.ID {
				notifications = append(notifications, model.Notification{
					RecipientID: *changes.oldAssignee,
					Title:       "Issue updated",
					Description: fmt.Sprintf("%s unassigned you from %q", actor.Username, issue.Title),
					Type:        model.NotificationTypeIssueUpdated,
					Link:        link,
				})
			}
		}
	}

	if !changes.statusSet && !changes.prioritySet && !changes.assigneeSet {
		description := fmt.Sprintf("%s updated the issue %q", actor.Username, issue.Title)
		for _, id := range stakeholders() {
			notifications = append(notifications, model.Notification{
				RecipientID: id,
				Title:       "Issue updated",
				Description: description,
				Type:        model.NotificationTypeIssueUpdated,
				Link:        link,
			})
		}
	}

	return notifications
}

// dispatchCommentAdded notifies mentioned users first, then the issue
// creator, then the assignee. A user already covered by a mention never also
// gets a comment_added for the same comment, and the commenter gets nothing.
func dispatchCommentAdded(actor *model.User, issue *model.Issue, comment *model.Comment) []model.Notification {
	var notifications []model.Notification
	link := issueLink(issue.ID)

	mentioned := make(map[uuid.UUID]struct{}, len(comment.Mentions))
	for _, id := range comment.Mentions {
		if id == actor.ID {
			continue
		}
		if _, ok := mentioned[id]; ok {
			continue
		}
		mentioned[id] = struct{}{}

		notifications = append(notifications, model.Notification{
			RecipientID: id,
			Title:       "You were mentioned",
			Description: fmt.Sprintf("%s mentioned you in a comment on %q", actor.Username, issue.Title),
			Type:        model.NotificationTypeMentioned,
			Link:        link,
		})
	}

	if issue.CreatedBy != actor.ID {
		if _, ok := mentioned[issue.CreatedBy]; !ok {
			notifications = append(notifications, model.Notification{
				RecipientID: issue.CreatedBy,
				Title:       "New comment",
				Description: fmt.Sprintf("%s commented on your issue %q", actor.Username, issue.Title),
				Type:        model.NotificationTypeCommentAdded,
				Link:        link,
			})
		}
	}

	if issue.AssigneeID != nil {
		assignee := *issue.AssigneeID
		if assignee != actor.ID && assignee != issue.CreatedBy {
			if _, ok := mentioned[assignee]; !ok {
				notifications = append(notifications, model.Notification{
					RecipientID: assignee,
					Title:       "New comment",
					Description: fmt.Sprintf("%s commented on %q", actor.Username, issue.Title),
					Type:        model.NotificationTypeCommentAdded,
					Link:        link,
				})
			}
		}
	}

	return notifications
}
