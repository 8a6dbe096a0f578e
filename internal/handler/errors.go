package handler

import (
	"errors"
	"net/http"

	"github.com/IssueTrackerApp/issue-service/internal/service"
)

var (
	errNoToken            = errors.New("there is no token")
	errInvalidJWT         = errors.New("invalid jwt")
	errInvalidUserID      = errors.New("invalid user ID")
	errInvalidID          = errors.New("invalid id")
	errInvalidPageLimit   = errors.New("page and limit must be integer")
	errInvalidLimitOffset = errors.New("limit and offset must be integer")
)

func (h *Handler) RespondError(w http.ResponseWriter, err error) {
	h.Respond(w, Resp{"error": err.Error()}, statusCode(err))
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
