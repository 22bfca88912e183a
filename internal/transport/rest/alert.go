package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/service/alert"
)

type alertService interface {
	ActivateSafety(ctx context.Context, groupID uuid.UUID) (alert.ActivateResult, error)
	RespondSafety(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error)
	CloseSafety(ctx context.Context, checkID uuid.UUID) error
	SendInstantAlert(ctx context.Context, groupID uuid.UUID, text string) (int, error)
}

// AlertHandler serves safety checks and instant alerts.
type AlertHandler struct {
	svc alertService
	log *slog.Logger
}

// NewAlertHandler creates an AlertHandler.
func NewAlertHandler(svc alertService, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{svc: svc, log: logger.With("handler", "alert")}
}

// Register mounts the alert endpoints on mux, each wrapped by wrap.
func (h *AlertHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("POST /api/groups/{id}/safety", wrap(http.HandlerFunc(h.Activate)))
	mux.Handle("POST /api/groups/{id}/alerts", wrap(http.HandlerFunc(h.Send)))
	mux.Handle("POST /api/safety/{id}/responses", wrap(http.HandlerFunc(h.Respond)))
	mux.Handle("POST /api/safety/{id}/close", wrap(http.HandlerFunc(h.Close)))
}

type safetyCheckResponse struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"group_id"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Created   bool       `json:"created"`
	Notified  int        `json:"notified"`
}

type safetyAnswerRequest struct {
	Safe *bool `json:"safe"`
}

type alertRequest struct {
	Text string `json:"text"`
}

// Activate handles POST /api/groups/{id}/safety. An already open check is
// reused and answered with 200 instead of 201.
func (h *AlertHandler) Activate(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.ActivateSafety(r.Context(), groupID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, safetyCheckResponse{
		ID:        res.Check.ID.String(),
		GroupID:   res.Check.GroupID.String(),
		CreatedAt: res.Check.CreatedAt,
		ClosedAt:  res.Check.ClosedAt,
		Created:   res.Created,
		Notified:  res.Notified,
	})
}

// Respond handles POST /api/safety/{id}/responses.
func (h *AlertHandler) Respond(w http.ResponseWriter, r *http.Request) {
	checkID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req safetyAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Safe == nil {
		writeError(w, http.StatusBadRequest, "safe is required")
		return
	}

	recorded, err := h.svc.RespondSafety(r.Context(), checkID, *req.Safe)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"recorded": recorded})
}

// Close handles POST /api/safety/{id}/close.
func (h *AlertHandler) Close(w http.ResponseWriter, r *http.Request) {
	checkID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.CloseSafety(r.Context(), checkID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Send handles POST /api/groups/{id}/alerts.
func (h *AlertHandler) Send(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req alertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.svc.SendInstantAlert(r.Context(), groupID, req.Text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"notified": n})
}
