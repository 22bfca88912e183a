package activity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// CreateInput holds the parameters for creating an activity.
// Location applies to meetings, Options to votes, Assignees to todos.
type CreateInput struct {
	Kind        domain.ActivityKind
	GroupID     uuid.UUID
	Label       string
	ScheduledAt time.Time
	Location    *string
	Options     []string
	Assignees   []uuid.UUID
}

// Validate checks all fields and collects all errors. Whether ScheduledAt
// lies in the future is checked by Create once a retry has been ruled out.
func (i CreateInput) Validate(cfg Config) error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be MEETING, VOTE or TODO"})
	}
	if i.GroupID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}
	errs = append(errs, validateLabel(i.Label, cfg.MaxLabelLength)...)

	if i.ScheduledAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "required"})
	}

	if i.Kind == domain.ActivityKindVote {
		errs = append(errs, validateOptions(i.Options, cfg)...)
	}
	if i.Location != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Location)) > cfg.MaxLabelLength {
		errs = append(errs, domain.FieldError{Field: "location", Message: fmt.Sprintf("max %d characters", cfg.MaxLabelLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for changing an activity.
// Nil fields are left unchanged.
type UpdateInput struct {
	ActivityID  uuid.UUID
	Label       *string
	ScheduledAt *time.Time
	Location    *string
}

// Validate checks all fields and collects all errors. A new ScheduledAt is
// checked against the clock by Update, and only when it differs.
func (i UpdateInput) Validate(cfg Config) error {
	var errs []domain.FieldError

	if i.ActivityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "activity_id", Message: "required"})
	}
	if i.Label == nil && i.ScheduledAt == nil && i.Location == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Label != nil {
		errs = append(errs, validateLabel(*i.Label, cfg.MaxLabelLength)...)
	}
	if i.ScheduledAt != nil && i.ScheduledAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AssignInput holds the parameters for assigning members to a todo.
type AssignInput struct {
	TodoID  uuid.UUID
	UserIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i AssignInput) Validate() error {
	var errs []domain.FieldError

	if i.TodoID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "todo_id", Message: "required"})
	}
	if len(i.UserIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "user_ids", Message: "at least one assignee required"})
	}
	for _, id := range i.UserIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "user_ids", Message: "must not contain empty IDs"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RespondInput holds a member's answer to an activity.
// Votes take the 1-based option number or the option text, meetings YES or NO,
// todos DONE or DECLINE.
type RespondInput struct {
	ActivityID uuid.UUID
	Answer     string
}

// Validate checks all fields and collects all errors.
func (i RespondInput) Validate() error {
	var errs []domain.FieldError

	if i.ActivityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "activity_id", Message: "required"})
	}
	if strings.TrimSpace(i.Answer) == "" {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateFuture(at, now time.Time) error {
	if at.After(now) {
		return nil
	}
	return domain.NewValidationError("scheduled_at", "must be in the future")
}

func validateLabel(label string, max int) []domain.FieldError {
	clean := domain.CleanLabel(label)
	if clean == "" {
		return []domain.FieldError{{Field: "label", Message: "required"}}
	}
	if utf8.RuneCountInString(clean) > max {
		return []domain.FieldError{{Field: "label", Message: fmt.Sprintf("max %d characters", max)}}
	}
	return nil
}

func validateOptions(options []string, cfg Config) []domain.FieldError {
	if len(options) < 2 || len(options) > cfg.MaxVoteOptions {
		return []domain.FieldError{{Field: "options", Message: fmt.Sprintf("between 2 and %d options", cfg.MaxVoteOptions)}}
	}
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		n := domain.NormalizeText(o)
		if n == "" {
			return []domain.FieldError{{Field: "options", Message: "options must not be empty"}}
		}
		if seen[n] {
			return []domain.FieldError{{Field: "options", Message: "options must be distinct"}}
		}
		seen[n] = true
	}
	return nil
}
