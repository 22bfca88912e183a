package menu

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
)

// createFlow is one of the activity creation flows:
// group -> label [-> options] -> when.
type createFlow struct {
	name string
	kind domain.ActivityKind
}

var createFlows = []createFlow{
	{name: "meeting", kind: domain.ActivityKindMeeting},
	{name: "vote", kind: domain.ActivityKindVote},
	{name: "todo", kind: domain.ActivityKindTodo},
}

// Accepted date formats. The short form means the next such date.
const (
	longWhenLayout  = "2006-01-02 15:04"
	shortWhenLayout = "02/01 15:04"
)

func (e *Engine) groupStep(self, next string) stepFunc {
	return func(ctx context.Context, s *session, _ url.Values) reply {
		return e.pickGroup(ctx, s, self, next)
	}
}

// pickGroup lets the caller choose one of their groups and continues at
// next with a group parameter. A single group is chosen without asking.
func (e *Engine) pickGroup(ctx context.Context, s *session, self, next string) reply {
	groups, err := e.groups.ListForUser(ctx, s.user.ID)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	switch len(groups) {
	case 0:
		return done(e.t(s, "groups.none", nil))
	case 1:
		return e.steps[next](ctx, s, url.Values{"group": {groups[0].ID.String()}})
	}

	if len(groups) > e.cfg.MaxListItems {
		groups = groups[:e.cfg.MaxListItems]
	}
	opts := make([]Option, len(groups))
	for i := range groups {
		opts[i] = option(e.groupName(s, &groups[i]), At(next, "group", groups[i].ID.String()))
	}
	return flowChoice(e.t(s, "groups.pick", nil), At(self), nil, opts...)
}

func (e *Engine) groupName(s *session, g *domain.Group) string {
	if g.Name != "" {
		return g.Name
	}
	return e.t(s, "group.unnamed", map[string]string{"code": g.JoinCode})
}

// flowStash returns the stash of the flow for groupID. A stash left by a
// flow for another group is dropped.
func flowStash(s *session, groupID string) url.Values {
	if s.stash.Get("group") == groupID {
		return copyValues(s.stash)
	}
	return url.Values{"group": {groupID}}
}

func (e *Engine) flowLabel(f createFlow) stepFunc {
	return func(_ context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		return e.showLabel(s, f, groupID, flowStash(s, groupID))
	}
}

func (e *Engine) showLabel(s *session, f createFlow, groupID string, stash url.Values) reply {
	self := At(f.name+".label", "group", groupID)
	if label := stash.Get("label"); label != "" {
		return flowQuestion(e.t(s, "create.label.again", map[string]string{"label": label}), self, stash)
	}
	return flowQuestion(e.t(s, "create."+f.name+".label", nil), self, stash)
}

func (e *Engine) submitLabel(f createFlow) stepFunc {
	return func(_ context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		stash := flowStash(s, groupID)

		label := domain.CleanLabel(s.input)
		if s.input == "#" && stash.Get("label") != "" {
			label = stash.Get("label")
		}
		if label == "" || utf8.RuneCountInString(label) > e.cfg.MaxLabelLength {
			return flowQuestion(e.t(s, "create.label.invalid", map[string]string{"max": strconv.Itoa(e.cfg.MaxLabelLength)}),
				At(f.name+".label", "group", groupID), stash)
		}
		stash.Set("label", label)

		if f.kind == domain.ActivityKindVote {
			return e.showOptions(s, f, groupID, stash)
		}
		return e.showWhen(s, f, groupID, stash)
	}
}

func (e *Engine) flowOptions(f createFlow) stepFunc {
	return func(_ context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		return e.showOptions(s, f, groupID, flowStash(s, groupID))
	}
}

func (e *Engine) showOptions(s *session, f createFlow, groupID string, stash url.Values) reply {
	return flowQuestion(e.t(s, "create.vote.options", map[string]string{"max": strconv.Itoa(e.cfg.MaxVoteOptions)}),
		At(f.name+".options", "group", groupID), stash)
}

func (e *Engine) submitOptions(f createFlow) stepFunc {
	return func(_ context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		stash := flowStash(s, groupID)
		if s.input == "0" {
			return e.showLabel(s, f, groupID, stash)
		}

		opts, ok := splitOptions(s.input, e.cfg.MaxVoteOptions)
		if !ok {
			return flowQuestion(e.t(s, "create.options.invalid", map[string]string{"max": strconv.Itoa(e.cfg.MaxVoteOptions)}),
				At(f.name+".options", "group", groupID), stash)
		}
		stash["option"] = opts
		return e.showWhen(s, f, groupID, stash)
	}
}

// splitOptions reads comma separated vote options: 2 to limit distinct entries.
func splitOptions(in string, limit int) ([]string, bool) {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(in, ",") {
		o := domain.CleanLabel(part)
		if o == "" {
			continue
		}
		key := domain.NormalizeText(o)
		if seen[key] {
			return nil, false
		}
		seen[key] = true
		out = append(out, o)
	}
	return out, len(out) >= 2 && len(out) <= limit
}

func (e *Engine) flowWhen(f createFlow) stepFunc {
	return func(_ context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		return e.showWhen(s, f, groupID, flowStash(s, groupID))
	}
}

func (e *Engine) showWhen(s *session, f createFlow, groupID string, stash url.Values) reply {
	return flowQuestion(e.t(s, "create."+f.name+".when", nil), At(f.name+".when", "group", groupID), stash)
}

func (e *Engine) submitWhen(f createFlow) stepFunc {
	return func(ctx context.Context, s *session, p url.Values) reply {
		groupID := p.Get("group")
		stash := flowStash(s, groupID)

		if s.input == "0" {
			if f.kind == domain.ActivityKindVote {
				return e.showOptions(s, f, groupID, stash)
			}
			return e.showLabel(s, f, groupID, stash)
		}
		if stash.Get("label") == "" {
			return e.showLabel(s, f, groupID, stash)
		}
		gid, err := uuid.Parse(groupID)
		if err != nil {
			return e.fail(ctx, s, domain.ErrNotFound)
		}

		retry := flowQuestion(e.t(s, "create.when.invalid", nil), At(f.name+".when", "group", groupID), stash)
		at, err := parseWhen(s.input, e.now())
		if err != nil {
			return retry
		}

		res, err := e.activities.Create(ctx, activity.CreateInput{
			Kind:        f.kind,
			GroupID:     gid,
			Label:       stash.Get("label"),
			ScheduledAt: at,
			Options:     stash["option"],
		})
		if invalid(err) {
			return retry
		}
		if err != nil {
			return e.fail(ctx, s, err)
		}

		key := "create.done"
		if !res.Created {
			key = "create.duplicate"
		}
		b := res.Activity.Base()
		return done(e.t(s, key, map[string]string{"label": b.Label, "when": b.ScheduledAt.Format(whenLayout)}))
	}
}

// parseWhen reads "2006-01-02 15:04" or "02/01 15:04" in UTC. The short form
// picks the next occurrence after now.
func parseWhen(in string, now time.Time) (time.Time, error) {
	in = strings.Join(strings.Fields(in), " ")
	if t, err := time.ParseInLocation(longWhenLayout, in, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(shortWhenLayout, in, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError("when", "use YYYY-MM-DD HH:MM or DD/MM HH:MM")
	}
	at := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	if !at.After(now) {
		at = at.AddDate(1, 0, 0)
	}
	return at, nil
}
