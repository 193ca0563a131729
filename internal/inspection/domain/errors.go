package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDraftNotFound  = errors.New("inspection draft not found")
	ErrDraftSubmitted = errors.New("inspection draft already submitted")
	ErrStepOutOfRange = errors.New("wizard step out of range")
	ErrNotFinalStep   = errors.New("draft can only be submitted from the review step")
	ErrIssueNotFound  = errors.New("issue not found")
	ErrImageNotFound  = errors.New("image not found")
	ErrImageLimit     = errors.New("issue image limit reached")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrForbidden      = errors.New("draft belongs to another inspector")
	ErrConflict       = errors.New("draft was modified concurrently")
	ErrRateLimited    = errors.New("too many image uploads, slow down")
)

// FieldError describes one failed required-field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a step gate finds missing or malformed fields.
type ValidationError struct {
	Step   int
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("step %q is incomplete: %s", StepName(e.Step), strings.Join(names, ", "))
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, field, fmt.Sprintf(format, args...))
}

func unknown(section, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
}
