package linkedin

import "fmt"

// Error kind strings recorded in results and audit entries
const (
	KindAuth            = "auth"
	KindValidation      = "validation"
	KindInvalidArgument = "invalid_argument"
	KindPublish         = "publish"
)

// AuthError indicates the access token was rejected. Fatal for the client
// instance and never retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("linkedin auth error: %s", e.Message)
}

// ValidationError indicates caller-supplied post text is malformed. Fails
// fast, never sent over the wire.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// InvalidArgumentError indicates a caller-supplied argument outside the
// accepted set
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// PublishError indicates the post could not be created: a non-2xx status
// after the retry budget, or a success response missing the post identifier
type PublishError struct {
	Message    string
	StatusCode int
}

func (e *PublishError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("publish error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("publish error: %s", e.Message)
}

// ErrorKind classifies an error into the recorded taxonomy
func ErrorKind(err error) string {
	switch err.(type) {
	case *AuthError:
		return KindAuth
	case *ValidationError:
		return KindValidation
	case *InvalidArgumentError:
		return KindInvalidArgument
	case *PublishError:
		return KindPublish
	default:
		return "unclassified"
	}
}
