package group

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// Rename gives a group a new name. Requires the group.rename permission.
func (s *Service) Rename(ctx context.Context, input RenameGroupInput) (*domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.perms.Check(ctx, userID, input.GroupID, permission.GroupRename); err != nil {
		return nil, err
	}

	name := domain.CleanLabel(input.Name)
	var updated *domain.Group
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Rename(txCtx, input.GroupID, name); err != nil {
			return fmt.Errorf("rename group: %w", err)
		}
		g, err := s.groups.GetByID(txCtx, input.GroupID)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		updated = g

		bundle := sideeffect.New()
		bundle.Record(groupEntry(g.ID, userID, domain.AuditActionRenamed, &name), "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group renamed",
		slog.String("user_id", userID.String()),
		slog.String("group_id", input.GroupID.String()),
	)
	return updated, nil
}
