package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// GetByID returns a group by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

// FindByJoinCode returns the group owning a join code, or domain.ErrNotFound.
func (s *Service) FindByJoinCode(ctx context.Context, code string) (*domain.Group, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("empty join code: %w", domain.ErrNotFound)
	}
	g, err := s.groups.GetByJoinCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find group by code: %w", err)
	}
	return g, nil
}

// FindCampaign returns the campaign registered for code, or domain.ErrNotFound.
func (s *Service) FindCampaign(ctx context.Context, code string) (*domain.Campaign, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("empty campaign code: %w", domain.ErrNotFound)
	}
	c, err := s.groups.GetCampaignByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return c, nil
}

// ListForUser returns the groups userID belongs to.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	groups, err := s.groups.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ListMembers returns the roster of a group the caller belongs to.
func (s *Service) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := s.perms.Check(ctx, userID, groupID, permission.GroupView); err != nil {
		return nil, err
	}

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
