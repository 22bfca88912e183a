// Package menu drives the stateless telephony menu. Each request carries the
// locator of the step to run; flow state that must survive between requests
// lives in the caller's session pointer.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
	"github.com/heartmarshall/huddle-backend/internal/service/alert"
	"github.com/heartmarshall/huddle-backend/internal/service/entry"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

type userService interface {
	ResolveCaller(ctx context.Context, phone string) (*domain.User, bool, error)
	Rename(ctx context.Context, input user.RenameInput) (*domain.User, error)
}

type entryRouter interface {
	Route(ctx context.Context, dial string, u *domain.User) (entry.Flow, error)
	Classify(ctx context.Context, code string) (entry.Flow, error)
}

type obligationResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error)
}

type activityService interface {
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error)
	Create(ctx context.Context, input activity.CreateInput) (activity.CreateResult, error)
	Respond(ctx context.Context, input activity.RespondInput) (string, error)
}

type groupService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	JoinByCode(ctx context.Context, userID uuid.UUID, code string) (group.JoinResult, error)
	CreateGroup(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error)
	Rename(ctx context.Context, input group.RenameGroupInput) (*domain.Group, error)
}

type alertService interface {
	ActivateSafety(ctx context.Context, groupID uuid.UUID) (alert.ActivateResult, error)
	RespondSafety(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error)
	SendInstantAlert(ctx context.Context, groupID uuid.UUID, text string) (int, error)
	SendAppLink(ctx context.Context) error
}

type pointerStore interface {
	Save(ctx context.Context, p domain.SessionPointer) error
	Fetch(ctx context.Context, identity string, now time.Time) (*domain.SessionPointer, error)
	Clear(ctx context.Context, identity string) error
}

type renderer interface {
	Render(locale, key string, vars map[string]string) string
}

// Config holds menu limits.
type Config struct {
	ScreenLimit    int
	PointerTTL     time.Duration
	MaxListItems   int
	MaxLabelLength int
	MaxVoteOptions int
	DefaultLocale  string
}

// Request is one inbound menu request.
type Request struct {
	Identity string
	Input    string
	// Locator is empty on a top-level entry.
	Locator     string
	Interrupted bool
	PriorInput  string
	// Dial is the full dial string; only present on a top-level entry.
	Dial string
}

// Option is a selectable line of a menu screen.
type Option struct {
	Label string `json:"label"`
	Next  string `json:"next"`
}

// Response is one rendered screen. A screen either lists Options or asks for
// free text posted to InputNext. End marks a terminal screen.
type Response struct {
	Prompt    string   `json:"prompt"`
	Options   []Option `json:"options,omitempty"`
	InputNext string   `json:"input_next,omitempty"`
	End       bool     `json:"end"`
	TooLong   bool     `json:"too_long,omitempty"`
}

// Text returns the screen as the caller sees it.
func (r Response) Text() string {
	var b strings.Builder
	b.WriteString(r.Prompt)
	for i, o := range r.Options {
		fmt.Fprintf(&b, "\n%d. %s", i+1, o.Label)
	}
	return b.String()
}

type stepFunc func(ctx context.Context, s *session, p url.Values) reply

// Engine renders menu screens.
type Engine struct {
	users       userService
	router      entryRouter
	obligations obligationResolver
	activities  activityService
	groups      groupService
	alerts      alertService
	pointers    pointerStore
	messages    renderer
	cfg         Config
	steps       map[string]stepFunc
	now         func() time.Time
	log         *slog.Logger
}

// NewEngine creates a new Engine.
func NewEngine(
	log *slog.Logger,
	cfg Config,
	users userService,
	router entryRouter,
	obligations obligationResolver,
	activities activityService,
	groups groupService,
	alerts alertService,
	pointers pointerStore,
	messages renderer,
) *Engine {
	e := &Engine{
		users:       users,
		router:      router,
		obligations: obligations,
		activities:  activities,
		groups:      groups,
		alerts:      alerts,
		pointers:    pointers,
		messages:    messages,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log.With("service", "menu"),
	}
	e.steps = e.registerSteps()
	return e
}

// session is the per-request state handed to steps.
type session struct {
	user    *domain.User
	input   string
	pointer *domain.SessionPointer
	stash   url.Values
}

func (s *session) locale() string { return s.user.Locale }

// Handle runs one request to completion and returns the screen to show.
// Errors never escape: they become error screens.
func (e *Engine) Handle(ctx context.Context, req Request) Response {
	u, _, err := e.users.ResolveCaller(ctx, req.Identity)
	if err != nil {
		e.log.WarnContext(ctx, "resolve caller", slog.String("error", err.Error()))
		s := &session{user: &domain.User{Locale: e.cfg.DefaultLocale}}
		return e.finish(ctx, s, e.fail(ctx, s, err))
	}

	ctx = ctxutil.WithUserID(ctx, u.ID)
	ctx = ctxutil.WithLocale(ctx, u.Locale)

	s := &session{user: u, input: strings.TrimSpace(req.Input)}
	if req.Interrupted && s.input == "" {
		s.input = strings.TrimSpace(req.PriorInput)
	}

	var r reply
	if strings.TrimSpace(req.Locator) == "" {
		r = e.enter(ctx, s, req.Dial)
	} else {
		r = e.dispatch(ctx, s, req.Locator)
	}
	return e.finish(ctx, s, r)
}

func (e *Engine) dispatch(ctx context.Context, s *session, raw string) reply {
	loc, err := ParseLocator(raw)
	if err != nil {
		return e.fail(ctx, s, fmt.Errorf("%w: %v", domain.ErrNotFound, err))
	}
	step, ok := e.steps[loc.Step]
	if !ok {
		return e.fail(ctx, s, fmt.Errorf("unknown step %q: %w", loc.Step, domain.ErrNotFound))
	}
	e.loadPointer(ctx, s)
	return step(ctx, s, loc.Params)
}

func (e *Engine) loadPointer(ctx context.Context, s *session) {
	p, err := e.pointers.Fetch(ctx, s.user.Phone, e.now())
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			e.log.WarnContext(ctx, "fetch session pointer", slog.String("error", err.Error()))
		}
		s.pointer, s.stash = nil, url.Values{}
		return
	}
	s.pointer = p
	s.stash = url.Values{}
	if p.Stash != nil {
		if v, err := url.ParseQuery(*p.Stash); err == nil {
			s.stash = v
		}
	}
}

// finish enforces the screen budget and stores or clears the session pointer.
func (e *Engine) finish(ctx context.Context, s *session, r reply) Response {
	resp := Response{Prompt: r.prompt, Options: r.options, End: r.end}
	if r.inputNext != nil {
		resp.InputNext = r.inputNext.String()
	}

	if n := utf8.RuneCountInString(resp.Text()); n > e.cfg.ScreenLimit {
		e.log.WarnContext(ctx, "screen over budget", slog.Int("runes", n), slog.Int("limit", e.cfg.ScreenLimit))
		resp = Response{Prompt: e.t(s, "too_long", nil), End: true, TooLong: true}
		r.end, r.resume = true, nil
	}

	if s.user.Phone == "" {
		return resp
	}
	switch {
	case r.end:
		if err := e.pointers.Clear(ctx, s.user.Phone); err != nil {
			e.log.WarnContext(ctx, "clear session pointer", slog.String("error", err.Error()))
		}
	case r.resume != nil:
		p := domain.SessionPointer{
			Identity:  s.user.Phone,
			Locator:   r.resume.String(),
			ExpiresAt: e.now().Add(e.cfg.PointerTTL),
		}
		if len(r.stash) > 0 {
			encoded := r.stash.Encode()
			p.Stash = &encoded
		}
		if err := e.pointers.Save(ctx, p); err != nil {
			e.log.WarnContext(ctx, "save session pointer", slog.String("error", err.Error()))
		}
	}
	return resp
}

func (e *Engine) t(s *session, key string, vars map[string]string) string {
	return e.messages.Render(s.locale(), key, vars)
}
