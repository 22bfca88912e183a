package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

type groupService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	CreateGroup(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error)
	JoinByCode(ctx context.Context, userID uuid.UUID, code string) (group.JoinResult, error)
	Rename(ctx context.Context, input group.RenameGroupInput) (*domain.Group, error)
}

// GroupHandler serves the group REST endpoints.
type GroupHandler struct {
	svc groupService
	log *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(svc groupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: logger.With("handler", "group")}
}

// Register mounts the group endpoints on mux, each wrapped by wrap.
func (h *GroupHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/groups", wrap(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/groups", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("POST /api/groups/join", wrap(http.HandlerFunc(h.Join)))
	mux.Handle("PATCH /api/groups/{id}", wrap(http.HandlerFunc(h.Rename)))
	mux.Handle("GET /api/groups/{id}/members", wrap(http.HandlerFunc(h.Members)))
}

type groupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	JoinCode  string    `json:"join_code"`
	CreatedAt time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type joinRequest struct {
	Code string `json:"code"`
}

type joinResponse struct {
	Group  groupResponse `json:"group"`
	Joined bool          `json:"joined"`
}

// List handles GET /api/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groups, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/groups. The name may be empty; the creator is
// then asked to name the group on their next call.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.svc.CreateGroup(r.Context(), group.CreateGroupInput{Name: req.Name})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(g))
}

// Join handles POST /api/groups/join.
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req joinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.JoinByCode(r.Context(), userID, req.Code)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Group: toGroupResponse(res.Group), Joined: res.Joined})
}

// Rename handles PATCH /api/groups/{id}.
func (h *GroupHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.svc.Rename(r.Context(), group.RenameGroupInput{GroupID: id, Name: req.Name})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}

// Members handles GET /api/groups/{id}/members.
func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{UserID: m.UserID.String(), Role: string(m.Role), JoinedAt: m.JoinedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func toGroupResponse(g *domain.Group) groupResponse {
	return groupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		CreatedBy: g.CreatedBy.String(),
		JoinCode:  g.JoinCode,
		CreatedAt: g.CreatedAt,
	}
}
