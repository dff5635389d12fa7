package kite

import (
	"encoding/json"
	"fmt"
)

// ExceptionType is the closed set of error kinds the remote API reports in
// the error_type field of its error envelope. Strings outside this set are
// preserved verbatim rather than discarded, so new remote error kinds stay
// inspectable.
type ExceptionType string

const (
	// ExceptionToken indicates session expiry or invalidation (HTTP 403).
	// The session must be cleared and login re-initiated.
	ExceptionToken ExceptionType = "TokenException"
	// ExceptionUser covers account status and permission errors.
	ExceptionUser ExceptionType = "UserException"
	// ExceptionOrder covers order placement and order fetch failures.
	ExceptionOrder ExceptionType = "OrderException"
	// ExceptionInput indicates missing or invalid request parameters (HTTP 400).
	ExceptionInput ExceptionType = "InputException"
	// ExceptionMargin indicates insufficient funds for an order.
	ExceptionMargin ExceptionType = "MarginException"
	// ExceptionHolding indicates insufficient holdings for a sell order.
	ExceptionHolding ExceptionType = "HoldingException"
	// ExceptionNetwork indicates the API could not reach the backend OMS.
	ExceptionNetwork ExceptionType = "NetworkException"
	// ExceptionData indicates the API could not understand the OMS response.
	ExceptionData ExceptionType = "DataException"
	// ExceptionGeneral is the remote catch-all for unclassified errors.
	ExceptionGeneral ExceptionType = "GeneralException"
)

// known reports whether the exception type is one of the closed set.
func (t ExceptionType) known() bool {
	switch t {
	case ExceptionToken, ExceptionUser, ExceptionOrder, ExceptionInput,
		ExceptionMargin, ExceptionHolding, ExceptionNetwork, ExceptionData,
		ExceptionGeneral:
		return true
	}
	return false
}

// APIError is one fully classified failure from the request pipeline.
// It carries the raw HTTP status and message alongside derived flags, so a
// caller can decide whether to re-authenticate, surface the message, or
// escalate without re-parsing anything.
type APIError struct {
	// Type is the classified exception kind. Unrecognized remote error_type
	// strings are kept verbatim here.
	Type ExceptionType

	// StatusCode is the HTTP status of the failed response, 0 when the
	// failure never produced a status (transport errors).
	StatusCode int

	// Message is the remote error message, or the transport error text.
	Message string

	// RequiresReauth is true only for TokenException: the session is gone
	// and the caller must log in again.
	RequiresReauth bool

	// RateLimited is true when the failure was an HTTP 429.
	RateLimited bool

	// Retryable marks failures likely to succeed if retried unchanged.
	Retryable bool

	// Cause is the underlying error for transport-level failures.
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("kite: %s (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("kite: %s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// errorEnvelope is the wire shape of a remote error response.
type errorEnvelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

// Classify maps one (status, body) failure outcome onto the closed error
// taxonomy. It is a pure function: the same inputs always yield the same
// APIError and flags.
//
// An explicit error_type inside a parseable error envelope wins; otherwise
// the status code decides: 400 input, 403 token, 429 network (rate limited),
// 5xx data, any other 4xx general.
func Classify(statusCode int, body []byte) *APIError {
	var (
		excType ExceptionType
		message string
	)

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.ErrorType != "" {
		excType = ExceptionType(env.ErrorType)
		message = env.Message
	} else {
		excType = exceptionForStatus(statusCode)
		message = string(body)
	}

	apiErr := &APIError{
		Type:           excType,
		StatusCode:     statusCode,
		Message:        message,
		RequiresReauth: excType == ExceptionToken,
		RateLimited:    statusCode == 429,
	}
	apiErr.Retryable = retryable(excType, statusCode)
	return apiErr
}

// classifyTransport wraps a transport-level failure (no HTTP status at all)
// as a retryable NetworkException.
func classifyTransport(err error) *APIError {
	return &APIError{
		Type:      ExceptionNetwork,
		Message:   err.Error(),
		Retryable: true,
		Cause:     err,
	}
}

func exceptionForStatus(statusCode int) ExceptionType {
	switch {
	case statusCode == 400:
		return ExceptionInput
	case statusCode == 403:
		return ExceptionToken
	case statusCode == 429:
		return ExceptionNetwork
	case statusCode >= 500 && statusCode < 600:
		return ExceptionData
	default:
		return ExceptionGeneral
	}
}

// retryable: network and data errors are transient by nature; beyond those,
// any 429 or 5xx outcome is retryable regardless of the mapped kind.
func retryable(excType ExceptionType, statusCode int) bool {
	if excType == ExceptionNetwork || excType == ExceptionData {
		return true
	}
	return statusCode == 429 || (statusCode >= 500 && statusCode < 600)
}
