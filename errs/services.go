package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("timeout")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
)

// NewUpstreamError reports a failed call to a third-party service.
// status is the upstream HTTP status, or 0 when no response arrived.
func NewUpstreamError(service string, status int, cause error) *ApiErr {
	details := fmt.Sprintf("%s request failed", service)
	if status != 0 {
		details = fmt.Sprintf("%s returned status %d", service, status)
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnavailable,
		Details:    details,
		Cause:      cause,
		Field:      service,
	}
}

func NewUpstreamTimeoutError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrTimeout,
		Details:    fmt.Sprintf("%s did not answer in time", service),
		Cause:      cause,
		Field:      service,
	}
}

func NewConfigMissingError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is not configured", name),
		Field:      name,
	}
}

func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
