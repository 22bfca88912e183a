package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

type inboxService interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// InboxHandler serves the caller's notification history.
type InboxHandler struct {
	svc inboxService
	log *slog.Logger
}

// NewInboxHandler creates an InboxHandler.
func NewInboxHandler(svc inboxService, logger *slog.Logger) *InboxHandler {
	return &InboxHandler{svc: svc, log: logger.With("handler", "inbox")}
}

// Register mounts the inbox endpoint on mux, wrapped by wrap.
func (h *InboxHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/notifications", wrap(http.HandlerFunc(h.List)))
}

type notificationResponse struct {
	ID        string    `json:"id"`
	EntityID  *string   `json:"entity_id,omitempty"`
	Kind      string    `json:"kind"`
	Channel   string    `json:"channel"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/notifications?limit=N.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list, err := h.svc.List(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		item := notificationResponse{
			ID:        n.ID.String(),
			Kind:      string(n.Kind),
			Channel:   string(n.Channel),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
		if n.EntityID != nil {
			id := n.EntityID.String()
			item.EntityID = &id
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}
