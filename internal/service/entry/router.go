// Package entry classifies the code dialed after the base service number.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// FlowKind tells the menu which entry flow a dial leads to.
type FlowKind string

const (
	FlowNone         FlowKind = "NONE"
	FlowSafety       FlowKind = "SAFETY"
	FlowAlert        FlowKind = "ALERT"
	FlowAppLink      FlowKind = "APP_LINK"
	FlowJoin         FlowKind = "JOIN"
	FlowCampaign     FlowKind = "CAMPAIGN"
	FlowUnrecognized FlowKind = "UNRECOGNIZED"
)

// Reserved reports whether the flow comes from a reserved feature code.
// Reserved flows skip the interrupted-session check.
func (k FlowKind) Reserved() bool {
	switch k {
	case FlowSafety, FlowAlert, FlowAppLink:
		return true
	}
	return false
}

// ReservedCodes maps feature codes to their flows. They win over any join
// or campaign code with the same digits.
var ReservedCodes = map[string]FlowKind{
	"000": FlowSafety,
	"111": FlowAlert,
	"999": FlowAppLink,
}

// Flow is the classified entry.
type Flow struct {
	Kind     FlowKind
	Code     string
	Group    *domain.Group
	Campaign *domain.Campaign
	// Welcomed is true when this entry triggered the one-time welcome.
	Welcomed bool
}

type groupFinder interface {
	FindByJoinCode(ctx context.Context, code string) (*domain.Group, error)
	FindCampaign(ctx context.Context, code string) (*domain.Campaign, error)
}

type welcomer interface {
	MarkWelcomed(ctx context.Context, u *domain.User) (bool, error)
}

// Router classifies dial suffixes.
type Router struct {
	groups       groupFinder
	users        welcomer
	prefixLength int
	log          *slog.Logger
}

// NewRouter creates a new Router. prefixLength is the length of the base
// dial string; anything dialed beyond it is the suffix.
func NewRouter(log *slog.Logger, groups groupFinder, users welcomer, prefixLength int) *Router {
	return &Router{
		groups:       groups,
		users:        users,
		prefixLength: prefixLength,
		log:          log.With("service", "entry"),
	}
}

// Suffix extracts the digits dialed after the base prefix. It returns "" when
// nothing was dialed beyond the prefix or when the rest is not a code.
func (r *Router) Suffix(dial string) string {
	dial = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(dial), "#"))
	if len(dial) <= r.prefixLength {
		return ""
	}
	rest := strings.Trim(dial[r.prefixLength:], "*")
	if rest == "" {
		return ""
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return rest
}

// Route classifies a top-level dial for u. The first top-level entry of a
// user fires the welcome whatever the branch; the per-user flag keeps it from
// firing twice.
func (r *Router) Route(ctx context.Context, dial string, u *domain.User) (Flow, error) {
	welcomed, err := r.users.MarkWelcomed(ctx, u)
	if err != nil {
		return Flow{}, fmt.Errorf("welcome: %w", err)
	}

	flow, err := r.Classify(ctx, r.Suffix(dial))
	if err != nil {
		return Flow{}, err
	}
	flow.Welcomed = welcomed

	r.log.DebugContext(ctx, "entry routed",
		slog.String("user_id", u.ID.String()),
		slog.String("flow", string(flow.Kind)),
		slog.String("code", flow.Code),
	)
	return flow, nil
}

// Classify resolves a suffix in fixed order: reserved code, join code,
// campaign code, unrecognized. An empty suffix is FlowNone.
func (r *Router) Classify(ctx context.Context, code string) (Flow, error) {
	if code == "" {
		return Flow{Kind: FlowNone}, nil
	}
	if kind, ok := ReservedCodes[code]; ok {
		return Flow{Kind: kind, Code: code}, nil
	}

	g, err := r.groups.FindByJoinCode(ctx, code)
	switch {
	case err == nil:
		return Flow{Kind: FlowJoin, Code: code, Group: g}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return Flow{}, fmt.Errorf("lookup join code: %w", err)
	}

	c, err := r.groups.FindCampaign(ctx, code)
	switch {
	case err == nil:
		return Flow{Kind: FlowCampaign, Code: code, Campaign: c}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return Flow{}, fmt.Errorf("lookup campaign: %w", err)
	}

	return Flow{Kind: FlowUnrecognized, Code: code}, nil
}
