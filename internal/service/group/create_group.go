package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// CreateGroup creates a group with a fresh numeric join code and makes the
// authenticated user its admin.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	g := domain.Group{
		ID:        uuid.New(),
		Name:      domain.CleanLabel(input.Name),
		CreatedBy: userID,
		CreatedAt: now,
	}

	var err error
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		g.JoinCode = s.code()
		err = s.create(ctx, g)
		if !errors.Is(err, domain.ErrAlreadyExists) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group created",
		slog.String("user_id", userID.String()),
		slog.String("group_id", g.ID.String()),
	)
	return &g, nil
}

func (s *Service) create(ctx context.Context, g domain.Group) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Create(txCtx, g); err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		if _, err := s.groups.AddMember(txCtx, g.ID, g.CreatedBy, domain.MemberRoleAdmin, g.CreatedAt); err != nil {
			return fmt.Errorf("add admin: %w", err)
		}
		bundle := sideeffect.New()
		bundle.Record(groupEntry(g.ID, g.CreatedBy, domain.AuditActionCreated, nil), "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
}

func randomJoinCode() string {
	var b strings.Builder
	// A leading zero would be lost by clients that treat the code as a number.
	b.WriteByte(byte('1' + rand.IntN(9)))
	for i := 1; i < JoinCodeLength; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
