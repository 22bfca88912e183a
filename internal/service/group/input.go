package group

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// CreateGroupInput holds the parameters for creating a group.
// An empty Name keeps the default name and later prompts the creator to rename.
type CreateGroupInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i CreateGroupInput) Validate() error {
	if utf8.RuneCountInString(domain.CleanLabel(i.Name)) > MaxNameLength {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// RenameGroupInput holds the parameters for renaming a group.
type RenameGroupInput struct {
	GroupID uuid.UUID
	Name    string
}

// Validate checks all fields and collects all errors.
func (i RenameGroupInput) Validate() error {
	var errs []domain.FieldError

	if i.GroupID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}
	name := domain.CleanLabel(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// NormalizeCode strips everything but digits from a dialed code.
func NormalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, code)
}
