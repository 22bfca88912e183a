package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

type activityService interface {
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error)
	Create(ctx context.Context, input activity.CreateInput) (activity.CreateResult, error)
	Update(ctx context.Context, input activity.UpdateInput) (domain.Activity, error)
	Cancel(ctx context.Context, activityID uuid.UUID) error
	Assign(ctx context.Context, input activity.AssignInput) error
	Respond(ctx context.Context, input activity.RespondInput) (string, error)
}

// ActivityHandler serves the activity REST endpoints.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

// Register mounts the activity endpoints on mux, each wrapped by wrap.
func (h *ActivityHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("POST /api/activities", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/activities/{id}", wrap(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/activities/{id}", wrap(http.HandlerFunc(h.Update)))
	mux.Handle("POST /api/activities/{id}/cancel", wrap(http.HandlerFunc(h.Cancel)))
	mux.Handle("POST /api/activities/{id}/responses", wrap(http.HandlerFunc(h.Respond)))
	mux.Handle("POST /api/activities/{id}/assignees", wrap(http.HandlerFunc(h.Assign)))
}

type createActivityRequest struct {
	Kind        string      `json:"kind"`
	GroupID     uuid.UUID   `json:"group_id"`
	Label       string      `json:"label"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Location    *string     `json:"location,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Assignees   []uuid.UUID `json:"assignees,omitempty"`
}

type updateActivityRequest struct {
	Label       *string    `json:"label,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

type respondRequest struct {
	Answer string `json:"answer"`
}

type assignRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

type activityResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	GroupID     string    `json:"group_id"`
	CreatorID   string    `json:"creator_id"`
	Label       string    `json:"label"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Canceled    bool      `json:"canceled"`
	Revision    int       `json:"revision"`
	Location    *string   `json:"location,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Closed      *bool     `json:"closed,omitempty"`
	Assignees   []string  `json:"assignees,omitempty"`
	Done        *bool     `json:"done,omitempty"`
}

type createActivityResponse struct {
	Activity activityResponse `json:"activity"`
	Created  bool             `json:"created"`
}

// Create handles POST /api/activities. A retried request answers 200 with
// the activity created the first time.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Create(r.Context(), activity.CreateInput{
		Kind:        domain.ActivityKind(req.Kind),
		GroupID:     req.GroupID,
		Label:       req.Label,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Options:     req.Options,
		Assignees:   req.Assignees,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if !res.Created {
		status = http.StatusOK
	}
	writeJSON(w, status, createActivityResponse{Activity: toActivityResponse(res.Activity), Created: res.Created})
}

// Get handles GET /api/activities/{id}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

// Update handles PATCH /api/activities/{id}.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.svc.Update(r.Context(), activity.UpdateInput{
		ActivityID:  id,
		Label:       req.Label,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

// Cancel handles POST /api/activities/{id}/cancel.
func (h *ActivityHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Cancel(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Respond handles POST /api/activities/{id}/responses.
func (h *ActivityHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answer, err := h.svc.Respond(r.Context(), activity.RespondInput{ActivityID: id, Answer: req.Answer})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// Assign handles POST /api/activities/{id}/assignees.
func (h *ActivityHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Assign(r.Context(), activity.AssignInput{TodoID: id, UserIDs: req.UserIDs}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toActivityResponse(a domain.Activity) activityResponse {
	b := a.Base()
	resp := activityResponse{
		ID:          b.ID.String(),
		Kind:        string(a.Kind()),
		GroupID:     b.GroupID.String(),
		CreatorID:   b.CreatorID.String(),
		Label:       b.Label,
		ScheduledAt: b.ScheduledAt,
		Canceled:    b.Canceled,
		Revision:    b.Revision,
	}
	switch v := a.(type) {
	case *domain.Meeting:
		resp.Location = v.Location
	case *domain.Vote:
		resp.Options = v.Options
		resp.Closed = &v.Closed
	case *domain.Todo:
		resp.Done = &v.Done
		for _, id := range v.Assignees {
			resp.Assignees = append(resp.Assignees, id.String())
		}
	}
	return resp
}
