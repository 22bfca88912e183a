package user

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// MaxNameLength bounds display names.
const MaxNameLength = 40

// RenameInput holds parameters for the rename operation.
type RenameInput struct {
	Name string
}

// Validate validates the rename input.
func (i RenameInput) Validate() error {
	name := domain.CleanLabel(i.Name)
	if name == "" {
		return domain.NewValidationError("name", "required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// UpdatePreferencesInput holds parameters for preference updates.
// All fields are optional (nil = don't change).
type UpdatePreferencesInput struct {
	Locale  *string
	Channel *domain.Channel
}

// Validate validates the preferences input.
func (i UpdatePreferencesInput) Validate() error {
	var errs []domain.FieldError

	if i.Locale == nil && i.Channel == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Locale != nil {
		if _, err := language.Parse(strings.TrimSpace(*i.Locale)); err != nil {
			errs = append(errs, domain.FieldError{Field: "locale", Message: "invalid language tag"})
		}
	}
	if i.Channel != nil && !i.Channel.IsValid() {
		errs = append(errs, domain.FieldError{Field: "channel", Message: "must be SMS, PUSH or EMAIL"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// NormalizePhone strips formatting from a caller identity so that
// "+254 700-000 001" and "+254700000001" resolve to the same user.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
