package iiif

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies why a parameter or document was rejected.
type ErrorKind int

const (
	// ErrSyntax: the string matches no recognized grammar production.
	ErrSyntax ErrorKind = iota
	// ErrRange: a numeric value lies outside its legal domain.
	ErrRange
	// ErrCapability: well-formed, but the service does not support it.
	ErrCapability
	// ErrStructure: a document misses required fields or uses unknown ones.
	ErrStructure
)

// Error represents a rejected parameter or document.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode maps the error onto the HTTP status the handlers answer with.
func (e *Error) StatusCode() int {
	if e.Kind == ErrCapability {
		return http.StatusNotImplemented
	}
	return http.StatusBadRequest
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{kind, fmt.Sprintf(format, args...)}
}
