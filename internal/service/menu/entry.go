package menu

import (
	"context"
	"errors"
	"net/url"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/entry"
)

// enter handles a top-level request. Reserved codes run at once; anything
// else first offers to resume an interrupted flow.
func (e *Engine) enter(ctx context.Context, s *session, dial string) reply {
	flow, err := e.router.Route(ctx, dial, s.user)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	if flow.Kind.Reserved() {
		return e.start(ctx, s, flow)
	}

	e.loadPointer(ctx, s)
	if s.pointer != nil {
		return e.recovery(s, flow)
	}
	return e.start(ctx, s, flow)
}

func (e *Engine) recovery(s *session, flow entry.Flow) reply {
	restart := At("restart")
	if flow.Code != "" {
		restart = At("restart", "code", flow.Code)
	}
	return choice(e.t(s, "recover.prompt", nil),
		option(e.t(s, "recover.resume", nil), At("resume")),
		option(e.t(s, "recover.restart", nil), restart),
	)
}

// resume replays the interrupted step with its stash.
func (e *Engine) resume(ctx context.Context, s *session, _ url.Values) reply {
	if s.pointer == nil {
		return e.home(ctx, s)
	}
	if err := e.pointers.Clear(ctx, s.user.Phone); err != nil {
		return e.fail(ctx, s, err)
	}
	loc, err := ParseLocator(s.pointer.Locator)
	if err != nil {
		return e.home(ctx, s)
	}
	step, ok := e.steps[loc.Step]
	if !ok {
		return e.home(ctx, s)
	}
	s.input = ""
	return step(ctx, s, loc.Params)
}

// restart drops the interrupted flow and runs a normal entry.
func (e *Engine) restart(ctx context.Context, s *session, p url.Values) reply {
	if err := e.pointers.Clear(ctx, s.user.Phone); err != nil {
		return e.fail(ctx, s, err)
	}
	s.pointer, s.stash = nil, url.Values{}

	flow, err := e.router.Classify(ctx, p.Get("code"))
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return e.start(ctx, s, flow)
}

func (e *Engine) start(ctx context.Context, s *session, flow entry.Flow) reply {
	switch flow.Kind {
	case entry.FlowSafety:
		return e.pickGroup(ctx, s, "safety.group", "safety.activate")
	case entry.FlowAlert:
		return e.pickGroup(ctx, s, "alert.group", "alert.text")
	case entry.FlowAppLink:
		return e.appLink(ctx, s, nil)
	case entry.FlowJoin:
		return e.join(ctx, s, flow.Code)
	case entry.FlowCampaign:
		return done(e.t(s, "campaign", map[string]string{"message": flow.Campaign.Message}))
	case entry.FlowUnrecognized:
		return choice(e.t(s, "code.unknown", map[string]string{"code": flow.Code}),
			option(e.t(s, "menu.open", nil), At("main")),
		)
	}
	return e.home(ctx, s)
}

// home shows the caller's most urgent obligation, or the main menu.
func (e *Engine) home(ctx context.Context, s *session) reply {
	ob, err := e.obligations.Resolve(ctx, s.user.ID)
	if err != nil {
		return e.fail(ctx, s, err)
	}
	if ob == nil {
		return e.mainMenu(ctx, s, nil)
	}

	r, err := e.obligation(ctx, s, ob)
	if errors.Is(err, domain.ErrNotFound) {
		return e.mainMenu(ctx, s, nil)
	}
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return r
}

func (e *Engine) mainMenu(_ context.Context, s *session, _ url.Values) reply {
	return choice(e.t(s, "menu.main", map[string]string{"name": s.user.DisplayName()}),
		option(e.t(s, "menu.meeting", nil), At("meeting.group")),
		option(e.t(s, "menu.vote", nil), At("vote.group")),
		option(e.t(s, "menu.todo", nil), At("todo.group")),
		option(e.t(s, "menu.groups", nil), At("groups")),
		option(e.t(s, "menu.app_link", nil), At("applink")),
	)
}

func (e *Engine) registerSteps() map[string]stepFunc {
	steps := map[string]stepFunc{
		"main":    e.mainMenu,
		"resume":  e.resume,
		"restart": e.restart,

		"safety.answer":   e.answerSafety,
		"vote.answer":     e.answerActivity,
		"rsvp.answer":     e.answerActivity,
		"todo.answer":     e.answerActivity,
		"rename.self:in":  e.renameSelf,
		"rename.group:in": e.renameGroup,

		"groups":       e.listGroups,
		"group.new":    e.newGroup,
		"group.new:in": e.submitNewGroup,

		"safety.group":    e.groupStep("safety.group", "safety.activate"),
		"safety.activate": e.activateSafety,
		"alert.group":     e.groupStep("alert.group", "alert.text"),
		"alert.text":      e.alertText,
		"alert.text:in":   e.submitAlert,
		"applink":         e.appLink,
	}
	for _, f := range createFlows {
		f := f
		steps[f.name+".group"] = e.groupStep(f.name+".group", f.name+".label")
		steps[f.name+".label"] = e.flowLabel(f)
		steps[f.name+".label:in"] = e.submitLabel(f)
		steps[f.name+".when"] = e.flowWhen(f)
		steps[f.name+".when:in"] = e.submitWhen(f)
		if f.kind == domain.ActivityKindVote {
			steps[f.name+".options"] = e.flowOptions(f)
			steps[f.name+".options:in"] = e.submitOptions(f)
		}
	}
	return steps
}
