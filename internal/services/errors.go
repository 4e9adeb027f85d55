package services

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidReceiverError reports a payout destination the gateway refused
// to verify.
type InvalidReceiverError struct {
	Msg string
}

func (e *InvalidReceiverError) Error() string { return e.Msg }

// NotFoundError reports a record that does not exist in the store.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// AlreadyProcessedError reports an approve/reject attempt on a request
// that has already left pending.
type AlreadyProcessedError struct {
	Status string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("withdrawal request already processed (status: %s)", e.Status)
}

// GatewayAuthError reports a failed access-token acquisition.
type GatewayAuthError struct {
	Msg string
	Err error
}

func (e *GatewayAuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *GatewayAuthError) Unwrap() error { return e.Err }

// GatewayError carries the upstream status code and body of a failed
// gateway call.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway request failed: %v", e.Err)
	}
	return fmt.Sprintf("gateway request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
