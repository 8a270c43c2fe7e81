package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQueryFailed matches every failure returned by Client.Do. Callers that
// only need to know an operation failed compare against it with errors.Is.
var ErrQueryFailed = errors.New("query failed")

// Kind classifies a failure for logging. Views do not branch on it.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindGraphQL   Kind = "graphql"
	KindDecode    Kind = "decode"
)

// QueryError is returned for any failed operation.
type QueryError struct {
	Operation  string
	Kind       Kind
	StatusCode int
	Errors     []Error
	Err        error
}

func (e *QueryError) Error() string {
	var b strings.Builder
	b.WriteString(ErrQueryFailed.Error())
	if e.Operation != "" {
		fmt.Fprintf(&b, ": %s", e.Operation)
	}
	switch {
	case e.Kind == KindStatus:
		fmt.Fprintf(&b, ": http status %d", e.StatusCode)
	case len(e.Errors) > 0:
		msgs := make([]string, 0, len(e.Errors))
		for _, ge := range e.Errors {
			msgs = append(msgs, ge.Message)
		}
		fmt.Fprintf(&b, ": %s", strings.Join(msgs, "; "))
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool { return target == ErrQueryFailed }

// Error is one entry of a GraphQL response's errors list.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}
