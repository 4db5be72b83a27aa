package api

import "errors"

// Kind classifies a failed gateway call. The client decides how to surface
// a failure from the kind alone; Message carries the server's own wording.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindAuth         Kind = "auth"
	KindBusinessRule Kind = "business_rule"
	KindNotFound     Kind = "not_found"
	KindTransport    Kind = "transport"
)

// Error is the typed failure returned by every gateway operation.
type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, 0 for transport failures
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

// IsKind reports whether err is (or wraps) a gateway error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Surface returns the human-readable message to show for err, falling back
// to a generic message when the server reported none.
func Surface(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "something went wrong, please try again"
}
