package menu

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// reply is a screen before the budget check. resume, when set, is saved as
// the caller's session pointer together with stash.
type reply struct {
	prompt    string
	options   []Option
	inputNext *Locator
	end       bool
	resume    *Locator
	stash     url.Values
}

func option(label string, next Locator) Option {
	return Option{Label: label, Next: next.String()}
}

// choice is an entry screen with options. The session pointer is untouched.
func choice(prompt string, opts ...Option) reply {
	return reply{prompt: prompt, options: opts}
}

// question is an entry screen asking for free text.
func question(prompt string, self Locator) reply {
	submit := self.Submit()
	return reply{prompt: prompt, inputNext: &submit}
}

// flowChoice is a flow screen with options; resuming replays self.
func flowChoice(prompt string, self Locator, stash url.Values, opts ...Option) reply {
	return reply{prompt: prompt, options: opts, resume: &self, stash: stash}
}

// flowQuestion is a flow screen asking for free text; resuming replays self.
func flowQuestion(prompt string, self Locator, stash url.Values) reply {
	submit := self.Submit()
	return reply{prompt: prompt, inputNext: &submit, resume: &self, stash: stash}
}

// done is a terminal screen. It clears the session pointer.
func done(prompt string) reply {
	return reply{prompt: prompt, end: true}
}

// fail turns an error into a terminal screen.
func (e *Engine) fail(ctx context.Context, s *session, err error) reply {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return done(e.t(s, "error.not_found", nil))
	case errors.Is(err, domain.ErrForbidden):
		return done(e.t(s, "error.forbidden", nil))
	case errors.Is(err, domain.ErrConflict):
		return done(e.t(s, "error.conflict", nil))
	case errors.Is(err, domain.ErrValidation):
		return done(e.t(s, "error.invalid", nil))
	}
	e.log.ErrorContext(ctx, "menu step failed", slog.String("error", err.Error()))
	return done(e.t(s, "error.generic", nil))
}

// invalid reports whether err should re-prompt the same step.
func invalid(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

func copyValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
