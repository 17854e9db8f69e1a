package linear

import (
	"fmt"
	"strings"
)

// TransportError indicates the request never produced an HTTP response:
// the dispatch channel itself failed (connection refused, DNS, context
// cancellation). The underlying error is preserved for the caller.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("dispatch error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GraphQLError is a single entry of a GraphQL response's errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// APIError indicates the Linear API responded, but with an HTTP error
// status or a GraphQL errors array. Exactly one of Body and Errors is
// populated depending on which level failed.
type APIError struct {
	StatusCode int
	Body       string
	Errors     []GraphQLError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		builder := strings.Builder{}
		builder.WriteString("linear api error: ")
		builder.WriteString(e.Errors[0].Message)
		if len(e.Errors[0].Path) > 0 {
			builder.WriteString(" path=")
			builder.WriteString(fmt.Sprint(e.Errors[0].Path))
		}
		return builder.String()
	}
	return fmt.Sprintf("linear api error: unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// OperationFailedError indicates a mutation returned success=false despite
// a clean transport and GraphQL response.
type OperationFailedError struct {
	Op string
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("linear: %s did not report success", e.Op)
}

// NotFoundError indicates a team key or issue identifier matched zero
// records during resolution. It is raised before any mutation is attempted.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// InvalidArgumentError indicates a caller-side precondition was violated.
// It is raised before any network call is made.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}
