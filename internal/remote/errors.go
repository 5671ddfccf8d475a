package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies a failed remote operation for retry decisions.
type ErrorKind int

const (
	// KindNetwork covers transport failures: refused connections, DNS,
	// timeouts. Retryable.
	KindNetwork ErrorKind = iota

	// KindServer covers 5xx responses. Retryable.
	KindServer

	// KindClient covers 4xx responses: validation, auth, missing rows.
	// Never retried.
	KindClient
)

// APIError is a non-2xx response from the remote store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote store error (%d): %s", e.Status, e.Message)
}

// AuthError indicates that authentication has failed or the session has
// expired. It is a client error and is never retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Classify maps an error to its ErrorKind. Anything that is not a
// recognizable HTTP response error is treated as a transport failure.
func Classify(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			return KindServer
		}
		return KindClient
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return KindClient
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	return KindNetwork
}

// IsRetryable reports whether the failure is transport- or
// availability-class. Business-logic errors (4xx, validation, auth) must
// propagate immediately: retrying a uniqueness violation would be wrong.
func IsRetryable(err error) bool {
	return Classify(err) != KindClient
}
