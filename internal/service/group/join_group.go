package group

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

// JoinResult is the outcome of JoinByCode. Joined is false when the user
// was already a member.
type JoinResult struct {
	Group  *domain.Group
	Joined bool
}

// JoinByCode adds userID to the group owning code as a plain member.
// Joining twice is not an error and keeps the original join time.
func (s *Service) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (JoinResult, error) {
	code = NormalizeCode(code)
	if code == "" {
		return JoinResult{}, domain.NewValidationError("code", "required")
	}

	var result JoinResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.GetByJoinCode(txCtx, code)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}
		result.Group = g

		added, err := s.groups.AddMember(txCtx, g.ID, userID, domain.MemberRoleMember, s.now())
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		if !added {
			return nil
		}
		result.Joined = true

		bundle := sideeffect.New()
		bundle.Record(groupEntry(g.ID, userID, domain.AuditActionJoined, nil), "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return JoinResult{}, err
	}

	if result.Joined {
		s.log.InfoContext(ctx, "member joined",
			slog.String("user_id", userID.String()),
			slog.String("group_id", result.Group.ID.String()),
		)
	}
	return result, nil
}
