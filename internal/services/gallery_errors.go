package services

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// ValidationKind tells callers which rule a gallery write broke.
type ValidationKind string

const (
	// MissingField means an attachment lacks caption or image_id.
	MissingField ValidationKind = "missing_field"
	// InvalidReference means an attachment's image_id does not resolve.
	InvalidReference ValidationKind = "invalid_reference"
	// InvalidField means a present field has an unacceptable value.
	InvalidField ValidationKind = "invalid_field"
)

// AttachmentProblem points at one offending entry of attachment_json.
// Index is -1 for problems with gallery-level fields.
type AttachmentProblem struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	ImageID string `json:"image_id,omitempty"`
}

// ValidationError is returned when a gallery write is rejected before
// anything is persisted. It satisfies errors.Is(err, errors.NotValid).
type ValidationError struct {
	Kind     ValidationKind
	Problems []AttachmentProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		switch {
		case p.Index < 0:
			parts = append(parts, p.Field)
		case p.ImageID != "":
			parts = append(parts, fmt.Sprintf("attachment %d: image %q not found", p.Index, p.ImageID))
		default:
			parts = append(parts, fmt.Sprintf("attachment %d: %s is required", p.Index, p.Field))
		}
	}
	return fmt.Sprintf("invalid gallery (%s): %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return errors.NotValid
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
