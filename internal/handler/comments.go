package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/IssueTrackerApp/issue-service/internal/dto"
	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/google/uuid"
)

func (h *Handler) commentsCreate(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	issueID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
		return
	}

	var input dto.CreateComment
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	comment, err := h.services.Comment.Create(r.Context(), user, issueID, input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, comment, http.StatusCreated)
}

func (h *Handler) commentsGetAll(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	issueID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidID.Error()}, http.StatusBadRequest)
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

	comments, err := h.services.Comment.GetByIssueID(r.Context(), issueID, limit, offset)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, comments, http.StatusOK)
}
