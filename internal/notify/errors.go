package notify

import "fmt"

// Kind classifies a failed notification. Every kind is non-fatal.
type Kind int

const (
	TransportFailure Kind = iota + 1
	NonSuccessResponse
)

func (k Kind) String() string {
	switch k {
	case TransportFailure:
		return "TransportFailure"
	case NonSuccessResponse:
		return "NonSuccessResponse"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error describes a notification that could not be delivered.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == NonSuccessResponse {
		return fmt.Sprintf("push API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("push API request failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrTransportFailure   = &Error{Kind: TransportFailure}
	ErrNonSuccessResponse = &Error{Kind: NonSuccessResponse}
)
