package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
)

type userService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	Rename(ctx context.Context, input user.RenameInput) (*domain.User, error)
	UpdatePreferences(ctx context.Context, input user.UpdatePreferencesInput) (*domain.User, error)
}

// UserHandler serves the caller's own profile.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// Register mounts the profile endpoints on mux, each wrapped by wrap.
func (h *UserHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/me", wrap(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/me", wrap(http.HandlerFunc(h.Update)))
}

type profileResponse struct {
	ID       string `json:"id"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Locale   string `json:"locale"`
	Channel  string `json:"channel"`
	Welcomed bool   `json:"welcomed"`
}

type updateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Locale  *string `json:"locale,omitempty"`
	Channel *string `json:"channel,omitempty"`
}

// Get handles GET /api/me.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(u))
}

// Update handles PATCH /api/me. A name change and a preference change in
// one request are applied in that order.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil && req.Locale == nil && req.Channel == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	var (
		u   *domain.User
		err error
	)
	if req.Name != nil {
		if u, err = h.svc.Rename(r.Context(), user.RenameInput{Name: *req.Name}); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}
	if req.Locale != nil || req.Channel != nil {
		input := user.UpdatePreferencesInput{Locale: req.Locale}
		if req.Channel != nil {
			ch := domain.Channel(*req.Channel)
			input.Channel = &ch
		}
		if u, err = h.svc.UpdatePreferences(r.Context(), input); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, toProfileResponse(u))
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:       u.ID.String(),
		Phone:    u.Phone,
		Name:     u.Name,
		Locale:   u.Locale,
		Channel:  string(u.Channel),
		Welcomed: u.IsWelcomed(),
	}
}
