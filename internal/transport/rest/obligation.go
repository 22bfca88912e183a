package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

type obligationResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error)
}

// ObligationHandler serves the caller's outstanding response.
type ObligationHandler struct {
	resolver obligationResolver
	log      *slog.Logger
}

// NewObligationHandler creates an ObligationHandler.
func NewObligationHandler(resolver obligationResolver, logger *slog.Logger) *ObligationHandler {
	return &ObligationHandler{resolver: resolver, log: logger.With("handler", "obligation")}
}

type obligationResponse struct {
	Kind      string `json:"kind"`
	SubjectID string `json:"subject_id,omitempty"`
}

// Get handles GET /api/obligation. A user who owes nothing gets kind NONE.
func (h *ObligationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ob, err := h.resolver.Resolve(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if ob == nil {
		writeJSON(w, http.StatusOK, obligationResponse{Kind: "NONE"})
		return
	}
	writeJSON(w, http.StatusOK, obligationResponse{Kind: string(ob.Kind), SubjectID: ob.SubjectID.String()})
}
