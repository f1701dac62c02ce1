package service

import "fmt"

// ValidationError reports a missing or malformed required input.
// It is always raised before any gateway or store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// GatewayError reports that the payment gateway rejected a request or was
// unreachable. The gateway's own code and message are surfaced verbatim;
// retrying is a caller decision.
type GatewayError struct {
	Code string
	Msg  string
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment gateway: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("payment gateway: %s", e.Msg)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// StoreError reports a persistence failure. Not retried internally.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PartialSettlementError is the partial-failure outcome: the gateway
// confirmed the payment but the ride write failed. Money has moved with no
// ride recorded. This must reach the caller as a distinct outcome and must
// not be auto-retried; a blind retry risks a duplicate ride.
type PartialSettlementError struct {
	PaymentIntentID string
	Err             error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("payment %s succeeded but ride was not recorded: %v", e.PaymentIntentID, e.Err)
}

func (e *PartialSettlementError) Unwrap() error { return e.Err }
