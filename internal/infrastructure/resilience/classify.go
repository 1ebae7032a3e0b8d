package resilience

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
)

// Failure says whether a call error reflects on the service as a whole.
type Failure int

const (
	// FailureNone is a success or an expected answer such as a missing key.
	FailureNone Failure = iota
	// FailureEntity is a rejection of one request (validation, conflict,
	// access to one resource) or a caller cancellation. The service
	// answered, so it says nothing about service health.
	FailureEntity
	// FailureService is throttling, a 5xx, a timeout or a transport error.
	FailureService
)

// String returns the failure name used in logs
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureEntity:
		return "entity"
	case FailureService:
		return "service"
	default:
		return "unknown"
	}
}

// statusCoder is implemented by SDK response errors and the Consul store.
type statusCoder interface {
	HTTPStatusCode() int
}

// Classify sorts err into a Failure. Errors carrying no service verdict
// are treated as service failures.
func Classify(err error) Failure {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, context.Canceled) {
		return FailureEntity
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureService
	}

	var apiErr smithy.APIError
	isAPIErr := errors.As(err, &apiErr)
	if isAPIErr {
		if _, ok := retry.DefaultThrottleErrorCodes[apiErr.ErrorCode()]; ok {
			return FailureService
		}
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatusCode()
		if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
			return FailureService
		}
		return FailureEntity
	}

	if isAPIErr {
		if apiErr.ErrorFault() == smithy.FaultServer {
			return FailureService
		}
		return FailureEntity
	}
	return FailureService
}
