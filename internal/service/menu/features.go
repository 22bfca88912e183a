package menu

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/alert"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
)

func (e *Engine) join(ctx context.Context, s *session, code string) reply {
	res, err := e.groups.JoinByCode(ctx, s.user.ID, code)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	vars := map[string]string{"group": e.groupName(s, res.Group)}
	if !res.Joined {
		return done(e.t(s, "join.already", vars))
	}
	return done(e.t(s, "join.done", vars))
}

func (e *Engine) listGroups(ctx context.Context, s *session, _ url.Values) reply {
	groups, err := e.groups.ListForUser(ctx, s.user.ID)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	if len(groups) > e.cfg.MaxListItems {
		groups = groups[:e.cfg.MaxListItems]
	}

	lines := make([]string, 0, len(groups)+1)
	lines = append(lines, e.t(s, "groups.title", map[string]string{"count": strconv.Itoa(len(groups))}))
	for i := range groups {
		lines = append(lines, e.groupName(s, &groups[i])+" ("+groups[i].JoinCode+")")
	}
	return flowChoice(strings.Join(lines, "\n"), At("groups"), nil,
		option(e.t(s, "groups.new", nil), At("group.new")),
	)
}

func (e *Engine) newGroup(_ context.Context, s *session, _ url.Values) reply {
	return flowQuestion(e.t(s, "group.new.name", nil), At("group.new"), nil)
}

func (e *Engine) submitNewGroup(ctx context.Context, s *session, _ url.Values) reply {
	g, err := e.groups.CreateGroup(ctx, group.CreateGroupInput{Name: s.input})
	if invalid(err) {
		return flowQuestion(e.t(s, "rename.invalid", nil), At("group.new"), nil)
	}
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "group.created", map[string]string{"group": e.groupName(s, g), "code": g.JoinCode}))
}

func (e *Engine) activateSafety(ctx context.Context, s *session, p url.Values) reply {
	id, err := uuid.Parse(p.Get("group"))
	if err != nil {
		return e.fail(ctx, s, domain.ErrNotFound)
	}
	res, err := e.alerts.ActivateSafety(ctx, id)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "safety.activated", map[string]string{"count": strconv.Itoa(res.Notified)}))
}

func (e *Engine) alertText(_ context.Context, s *session, p url.Values) reply {
	return flowQuestion(e.t(s, "alert.prompt", map[string]string{"max": strconv.Itoa(alert.MaxAlertLength)}),
		At("alert.text", "group", p.Get("group")), nil)
}

func (e *Engine) submitAlert(ctx context.Context, s *session, p url.Values) reply {
	id, err := uuid.Parse(p.Get("group"))
	if err != nil {
		return e.fail(ctx, s, domain.ErrNotFound)
	}
	n, err := e.alerts.SendInstantAlert(ctx, id, s.input)
	if invalid(err) {
		return flowQuestion(e.t(s, "alert.invalid", map[string]string{"max": strconv.Itoa(alert.MaxAlertLength)}),
			At("alert.text", "group", p.Get("group")), nil)
	}
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "alert.sent", map[string]string{"count": strconv.Itoa(n)}))
}

func (e *Engine) appLink(ctx context.Context, s *session, _ url.Values) reply {
	if err := e.alerts.SendAppLink(ctx); err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "applink.sent", nil))
}
