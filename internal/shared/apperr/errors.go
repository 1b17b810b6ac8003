package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// ERROR KINDS
// =====================================================
// Kind classifies a failure for callers; handlers map it to an HTTP status.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPersistence  Kind = "persistence"
	KindNotification Kind = "notification"
	KindNotFound     Kind = "not_found"
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields names the offending input fields of a validation failure.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.FieldNames(), ", "))
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldNames returns the offending field names in sorted order.
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =====================================================
// CONSTRUCTORS
// =====================================================

func Validation(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func Persistence(code, message string, err error) *Error {
	return &Error{Kind: KindPersistence, Code: code, Message: message, Err: err}
}

func Notification(code, message string, err error) *Error {
	return &Error{Kind: KindNotification, Code: code, Message: message, Err: err}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// =====================================================
// HELPERS
// =====================================================

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsPersistence(err error) bool  { return IsKind(err, KindPersistence) }
func IsNotification(err error) bool { return IsKind(err, KindNotification) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }

// FromValidation converts ozzo-validation field errors into a validation
// error keyed by field name. Any other error becomes a field-less validation error.
func FromValidation(code, message string, err error) *Error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return Validation(code, err.Error(), nil)
	}
	fields := make(map[string]string, len(fieldErrs))
	for name, fieldErr := range fieldErrs {
		fields[name] = fieldErr.Error()
	}
	return Validation(code, message, fields)
}
