package handler

import (
	"net/http"
	"strconv"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

func (h *Handler) notificationsGet(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	page := defaultPage
	if pageString := r.URL.Query().Get("page"); pageString != "" {
		var err error
		page, err = strconv.Atoi(pageString)
		if err != nil {
			h.Respond(w, Resp{"error": errInvalidPageLimit.Error()}, http.StatusBadRequest)
			return
		}
	}

	limit := defaultLimit
	if limitString := r.URL.Query().Get("limit"); limitString != "" {
		var err error
		limit, err = strconv.Atoi(limitString)
		if err != nil {
			h.Respond(w, Resp{"error": errInvalidPageLimit.Error()}, http.StatusBadRequest)
			return
		}
	}

	notifications, err := h.services.Notification.GetUserNotifications(r.Context(), user.ID, page, limit)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, notifications, http.StatusOK)
}

func (h *Handler) notificationsMarkRead(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	notificationID, err := uuid.Parse(r.PathValue("nId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
		return
	}

	notification, err := h.services.Notification.MarkRead(r.Context(), user.ID, notificationID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, notification, http.StatusOK)
}

func (h *Handler) notificationsMarkAllRead(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	count, err := h.services.Notification.MarkAllRead(r.Context(), user.ID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{"count": count}, http.StatusOK)
}
