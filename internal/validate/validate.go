// Package validate checks and sanitizes raw contact-form payloads.
// It is pure: no I/O, no side effects.
package validate

import (
	"regexp"
	"strings"

	"github.com/aryanpathak02/EmailDispatcher/internal/model"
)

// Code classifies a validation failure.
type Code string

const (
	CodeMissingFields      Code = "missing_fields"
	CodeInvalidType        Code = "invalid_type"
	CodeInvalidEmailFormat Code = "invalid_email_format"
)

// Error is a typed validation failure with a client-facing message.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

const missingFieldsMessage = "Missing required fields: name, comment, and email are required"

// emailPattern matches local@domain.tld: non-whitespace/non-@ runs around
// a single @ with at least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RawSubmission is the undecoded shape of a request body. Fields are `any`
// so absent, null, and non-string values can be told apart from text.
type RawSubmission struct {
	Name    any `json:"name"`
	Comment any `json:"comment"`
	Email   any `json:"email"`
}

// Submission validates raw input and returns a sanitized model.Submission.
//
// Failure order per field: absent/null, non-string, empty after trim. The
// email format check runs last, over the trimmed value.
func Submission(raw RawSubmission) (model.Submission, error) {
	if raw.Name == nil || raw.Comment == nil || raw.Email == nil {
		return model.Submission{}, &Error{
			Code:    CodeMissingFields,
			Message: missingFieldsMessage,
		}
	}

	name, ok := raw.Name.(string)
	if !ok {
		return model.Submission{}, &Error{
			Code:    CodeInvalidType,
			Field:   "name",
			Message: "Name must be a non-empty string",
		}
	}
	comment, ok := raw.Comment.(string)
	if !ok {
		return model.Submission{}, &Error{
			Code:    CodeInvalidType,
			Field:   "comment",
			Message: "Comment must be a non-empty string",
		}
	}
	email, ok := raw.Email.(string)
	if !ok {
		return model.Submission{}, &Error{
			Code:    CodeInvalidType,
			Field:   "email",
			Message: "Invalid email format",
		}
	}

	if strings.TrimSpace(name) == "" || strings.TrimSpace(comment) == "" || strings.TrimSpace(email) == "" {
		return model.Submission{}, &Error{
			Code:    CodeMissingFields,
			Message: missingFieldsMessage,
		}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return model.Submission{}, &Error{
			Code:    CodeInvalidEmailFormat,
			Field:   "email",
			Message: "Invalid email format",
		}
	}

	return model.Submission{
		Name:    Sanitize(name),
		Comment: Sanitize(comment),
		Email:   email,
	}, nil
}

// Sanitize trims surrounding whitespace and strips every '<' and '>'
// so free text can be embedded in an email body. Idempotent.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
