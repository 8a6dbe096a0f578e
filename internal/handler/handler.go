package handler

import (
	"encoding/json"
	"net/http"

	"github.com/IssueTrackerApp/issue-service/internal/model"
	"github.com/IssueTrackerApp/issue-service/internal/service"
)

type Resp map[string]interface{}

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/issues", h.withAuth(h.issuesCreate))
	mux.HandleFunc("GET /api/v1/issues", h.withAuth(h.issuesGetAll))
	mux.HandleFunc("GET /api/v1/issues/{id}", h.withAuth(h.issuesGet))
	mux.HandleFunc("PATCH /api/v1/issues/{id}", h.withAuth(h.issuesUpdate))
	mux.HandleFunc("DELETE /api/v1/issues/{id}", h.withAuth(h.issuesDelete))

	mux.HandleFunc("POST /api/v1/issues/{id}/comments", h.withAuth(h.commentsCreate))
	mux.HandleFunc("GET /api/v1/issues/{id}/comments", h.withAuth(h.commentsGetAll))

	mux.HandleFunc("GET /api/v1/notifications", h.withAuth(h.notificationsGet))
	mux.HandleFunc("PATCH /api/v1/notifications/read-all", h.withAuth(h.notificationsMarkAllRead))
	mux.HandleFunc("PATCH /api/v1/notifications/{nId}/read", h.withAuth(h.notificationsMarkRead))

	return mux
}

func (h *Handler) withAuth(next func(user *model.User, w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		next(user, w, r)
	}
}

func (h *Handler) Respond(w http.ResponseWriter, resp any, statusCode int) {
	respJSON, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respJSON)
}
