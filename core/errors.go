package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoDocument is returned by a DocumentStore when the requested document does not exist.
var ErrNoDocument = errors.New("document not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// RuleKind names a domain rule violation.
type RuleKind string

const (
	DuplicateSlug    RuleKind = "DuplicateSlug"
	InvalidHierarchy RuleKind = "InvalidHierarchy"
	HasDependents    RuleKind = "HasDependents"
)

// RuleError is returned when a mutation breaks a rule that spans documents (hierarchy, uniqueness, references).
type RuleError struct {
	Kind    RuleKind
	Field   string
	Message string
}

func NewRuleError(kind RuleKind, field, msg string) error {
	return &RuleError{Kind: kind, Field: field, Message: msg}
}

func (err RuleError) Error() string {
	return err.Message
}

// IsRule reports whether the cause of err is a RuleError of the given kind.
func IsRule(err error, kind RuleKind) bool {
	rErr, ok := errors.Cause(err).(*RuleError)
	return ok && rErr.Kind == kind
}

type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", err.Resource)
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
