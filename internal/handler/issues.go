package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/IssueTrackerApp/issue-service/internal/dto"
	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
)

const (
	defaultIssuesLimit  = 20
	defaultIssuesOffset = 0
)

func (h *Handler) issuesCreate(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	var input dto.CreateIssue
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	issue, err := h.services.Issue.Create(r.Context(), user, input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, issue, http.StatusCreated)
}

func (h *Handler) issuesGetAll(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	limit := defaultIssuesLimit
	if limitString := r.URL.Query().Get("limit"); limitString != "" {
		var err error
		limit, err = strconv.Atoi(limitString)
		if err != nil {
			h.Respond(w, Resp{"error": errInvalidLimitOffset.Error()}, http.StatusBadRequest)
			return
		}
	}

	offset := defaultIssuesOffset
	if offsetString := r.URL.Query().Get("offset"); offsetString != "" {
		var err error
		offset, err = strconv.Atoi(offsetString)
		if err != nil {
			h.Respond(w, Resp{"error": errInvalidLimitOffset.Error()}, http.StatusBadRequest)
			return
		}
	}

	issues, err := h.services.Issue.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, issues, http.StatusOK)
}

func (h *Handler) issuesGet(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	issueID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
		return
	}

	issue, err := h.services.Issue.FindByID(r.Context(), issueID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, issue, http.StatusOK)
}

func (h *Handler) issuesUpdate(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	issueID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	issue, err := h.services.Issue.UpdateByID(r.Context(), user, issueID, updates)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, issue, http.StatusOK)
}

func (h *Handler) issuesDelete(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	issueID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Issue.DeleteByID(r.Context(), user, issueID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}
