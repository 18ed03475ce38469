package apierror

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"net/http"
	"sort"
	"strings"
)

// ErrorResponse abstracts all error responses sent back to the browser.
//
// This interface does not implement `error`, since its only purpose
// is to be used for HTTP responses and not for logging circumstances.
// Pages are rendered server-side, so errors travel as plain text.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int

	// Text is the plain-text body shown to the user.
	Text() string
}

type APIError struct {
	Message string
	Status  int
}

func (a *APIError) Code() int {
	return a.Status
}

func (a *APIError) Text() string {
	return a.Message
}

type StructuredError struct {
	Errors map[string][]string
	Status int
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// Text renders one "field: problem" line per problem, fields sorted.
func (s *StructuredError) Text() string {
	fields := make([]string, 0, len(s.Errors))
	for field := range s.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for _, field := range fields {
		for _, problem := range s.Errors[field] {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(field + ": " + problem)
		}
	}
	return sb.String()
}

var (
	InternalServerError = NewSimple(500, "Internal server error")
	NotFoundError       = NewSimple(404, "Entry not found")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems.Add(field, "This field is required")
		case "max":
			problems.Add(field, "Value is too long, max: "+fe.Param())

		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return problems
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewPersistenceError reports a failed write against the entry store.
// The action describes what was attempted, e.g. "adding the entry".
func NewPersistenceError(action string, cause error) *APIError {
	if cause == nil {
		return NewSimple(http.StatusInternalServerError, "There was an issue %s", action)
	}
	return NewSimple(http.StatusInternalServerError, "There was an issue %s: %v", action, cause)
}

func NewMissingFieldError(field string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing form field '%s'", field)
}
