// Package obligation decides the single response a returning user owes.
package obligation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

type obligationRepo interface {
	PendingSafety(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	PendingVote(ctx context.Context, userID uuid.UUID, now time.Time) (uuid.UUID, bool, error)
	PendingRSVP(ctx context.Context, userID uuid.UUID, now time.Time) (uuid.UUID, bool, error)
	PendingTodo(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	NeedsSelfRename(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	PendingGroupRename(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
}

// Resolver evaluates obligation kinds in priority order and stops at the
// first hit, so lower-priority lookups are never run once one matches.
type Resolver struct {
	repo obligationRepo
	now  func() time.Time
	log  *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(log *slog.Logger, repo obligationRepo) *Resolver {
	return &Resolver{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		log:  log.With("service", "obligation"),
	}
}

// Resolve returns the highest-priority obligation of userID, or nil when the
// user owes nothing. Without intervening writes it returns the same result.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error) {
	now := r.now()

	for _, kind := range domain.ObligationPriority {
		id, ok, err := r.lookup(ctx, kind, userID, now)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", kind, err)
		}
		if ok {
			r.log.DebugContext(ctx, "obligation found",
				slog.String("user_id", userID.String()),
				slog.String("kind", string(kind)),
				slog.String("subject_id", id.String()),
			)
			return &domain.Obligation{Kind: kind, SubjectID: id}, nil
		}
	}
	return nil, nil
}

func (r *Resolver) lookup(ctx context.Context, kind domain.ObligationKind, userID uuid.UUID, now time.Time) (uuid.UUID, bool, error) {
	switch kind {
	case domain.ObligationSafety:
		return r.repo.PendingSafety(ctx, userID)
	case domain.ObligationVote:
		return r.repo.PendingVote(ctx, userID, now)
	case domain.ObligationRSVP:
		return r.repo.PendingRSVP(ctx, userID, now)
	case domain.ObligationTodo:
		return r.repo.PendingTodo(ctx, userID)
	case domain.ObligationSelfRename:
		return r.repo.NeedsSelfRename(ctx, userID)
	case domain.ObligationGroupRename:
		return r.repo.PendingGroupRename(ctx, userID)
	}
	return uuid.Nil, false, fmt.Errorf("unknown obligation kind %q", kind)
}
