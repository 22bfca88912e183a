package menu

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
)

const whenLayout = "02 Jan 15:04"

// obligation renders the screen that asks for an owed response.
func (e *Engine) obligation(ctx context.Context, s *session, ob *domain.Obligation) (reply, error) {
	id := ob.SubjectID.String()

	switch ob.Kind {
	case domain.ObligationSafety:
		return choice(e.t(s, "obligation.safety", nil),
			option(e.t(s, "answer.safe", nil), At("safety.answer", "id", id, "safe", "1")),
			option(e.t(s, "answer.unsafe", nil), At("safety.answer", "id", id, "safe", "0")),
		), nil

	case domain.ObligationVote, domain.ObligationRSVP, domain.ObligationTodo:
		a, err := e.activities.Get(ctx, s.user.ID, ob.SubjectID)
		if err != nil {
			return reply{}, err
		}
		return e.activityObligation(s, a), nil

	case domain.ObligationSelfRename:
		return question(e.t(s, "obligation.rename.self", nil), At("rename.self")), nil

	case domain.ObligationGroupRename:
		g, err := e.groups.GetByID(ctx, ob.SubjectID)
		if err != nil {
			return reply{}, err
		}
		return question(e.t(s, "obligation.rename.group", map[string]string{"code": g.JoinCode}),
			At("rename.group", "id", id)), nil
	}
	return reply{}, fmt.Errorf("unknown obligation %q", ob.Kind)
}

func (e *Engine) activityObligation(s *session, a domain.Activity) reply {
	b := a.Base()
	id := b.ID.String()
	vars := map[string]string{"label": b.Label, "when": b.ScheduledAt.Format(whenLayout)}

	switch v := a.(type) {
	case *domain.Vote:
		opts := make([]Option, len(v.Options))
		for i, o := range v.Options {
			opts[i] = option(o, At("vote.answer", "id", id, "answer", strconv.Itoa(i+1)))
		}
		return choice(e.t(s, "obligation.vote", vars), opts...)
	case *domain.Meeting:
		return choice(e.t(s, "obligation.rsvp", vars),
			option(e.t(s, "answer.yes", nil), At("rsvp.answer", "id", id, "answer", domain.RSVPYes)),
			option(e.t(s, "answer.no", nil), At("rsvp.answer", "id", id, "answer", domain.RSVPNo)),
		)
	case *domain.Todo:
		return choice(e.t(s, "obligation.todo", vars),
			option(e.t(s, "answer.done", nil), At("todo.answer", "id", id, "answer", domain.TodoDone)),
			option(e.t(s, "answer.decline", nil), At("todo.answer", "id", id, "answer", domain.TodoDecline)),
		)
	}
	return done(e.t(s, "error.generic", nil))
}

func (e *Engine) answerSafety(ctx context.Context, s *session, p url.Values) reply {
	id, err := uuid.Parse(p.Get("id"))
	if err != nil {
		return e.fail(ctx, s, domain.ErrNotFound)
	}
	recorded, err := e.alerts.RespondSafety(ctx, id, p.Get("safe") == "1")
	if err != nil {
		return e.fail(ctx, s, err)
	}
	if !recorded {
		return done(e.t(s, "answer.already", nil))
	}
	return done(e.t(s, "answer.thanks", nil))
}

func (e *Engine) answerActivity(ctx context.Context, s *session, p url.Values) reply {
	id, err := uuid.Parse(p.Get("id"))
	if err != nil {
		return e.fail(ctx, s, domain.ErrNotFound)
	}
	answer, err := e.activities.Respond(ctx, activity.RespondInput{ActivityID: id, Answer: p.Get("answer")})
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "answer.recorded", map[string]string{"answer": answer}))
}

func (e *Engine) renameSelf(ctx context.Context, s *session, _ url.Values) reply {
	u, err := e.users.Rename(ctx, user.RenameInput{Name: s.input})
	if invalid(err) {
		return question(e.t(s, "rename.invalid", nil), At("rename.self"))
	}
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "rename.done", map[string]string{"name": u.Name}))
}

func (e *Engine) renameGroup(ctx context.Context, s *session, p url.Values) reply {
	id, err := uuid.Parse(p.Get("id"))
	if err != nil {
		return e.fail(ctx, s, domain.ErrNotFound)
	}
	g, err := e.groups.Rename(ctx, group.RenameGroupInput{GroupID: id, Name: s.input})
	if invalid(err) {
		return question(e.t(s, "rename.invalid", nil), At("rename.group", "id", id.String()))
	}
	if err != nil {
		return e.fail(ctx, s, err)
	}
	return done(e.t(s, "rename.done", map[string]string{"name": g.Name}))
}
