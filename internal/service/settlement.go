package service

import (
	"context"
	"errors"
	"log"

	"yatra/internal/domain"
	"yatra/internal/repository"
)

// SettlementService sequences the payment confirmation round trip and the
// ride write. The two systems share no transaction: the store write happens
// strictly after the gateway reports terminal success, and every partial
// failure in between is surfaced as a distinct outcome.
type SettlementService struct {
	payments *PaymentService
	rides    *RideService
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(payments *PaymentService, rides *RideService) *SettlementService {
	return &SettlementService{payments: payments, rides: rides}
}

// SettleRideRequest pairs a confirmation request with the ride payload to
// persist once the payment succeeds. The ride's payment intent id is taken
// from the payment block.
type SettleRideRequest struct {
	Payment ConfirmPaymentRequest
	Ride    CreateRideRequest
}

// SettlementResult is the outcome of an end-to-end settlement attempt.
// Exactly one of Ride, ClientSecret, RawStatus is meaningful, keyed by Kind.
type SettlementResult struct {
	Kind         OutcomeKind
	Ride         *domain.Ride // set when Kind is OutcomeSucceeded
	ClientSecret string       // set when Kind is OutcomeRequiresAction
	RawStatus    string       // set when Kind is OutcomePending
	Duplicate    bool         // true when the intent had already settled
}

// SettleRide confirms the payment and, only on terminal success, writes the
// ride. A write failure after success returns PartialSettlementError: money
// has moved with no ride recorded, and a blind retry could double-book, so
// the caller must surface it for manual reconciliation. A duplicate write
// for an intent that already settled returns the original ride instead.
func (s *SettlementService) SettleRide(ctx context.Context, req SettleRideRequest) (*SettlementResult, error) {
	// Ride payload problems must fail before money moves.
	ridePayload := req.Ride
	ridePayload.PaymentIntentID = req.Payment.PaymentIntentID
	ridePayload.PaymentStatus = string(domain.PaymentStatusPaid)
	if err := validateCreateRide(ridePayload); err != nil {
		return nil, err
	}

	outcome, err := s.payments.ConfirmPayment(ctx, req.Payment)
	if err != nil {
		return nil, err
	}

	switch outcome.Kind {
	case OutcomeRequiresAction:
		return &SettlementResult{
			Kind:         OutcomeRequiresAction,
			ClientSecret: outcome.ClientSecret,
		}, nil
	case OutcomePending:
		return &SettlementResult{
			Kind:      OutcomePending,
			RawStatus: outcome.RawStatus,
		}, nil
	}

	ride, err := s.rides.CreateRide(ctx, ridePayload)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRide) {
			existing, getErr := s.rides.GetRideByPaymentIntent(ctx, req.Payment.PaymentIntentID)
			if getErr == nil && existing != nil {
				return &SettlementResult{Kind: OutcomeSucceeded, Ride: existing, Duplicate: true}, nil
			}
		}
		log.Printf("partial settlement: intent %s succeeded, ride write failed: %v", req.Payment.PaymentIntentID, err)
		return nil, &PartialSettlementError{PaymentIntentID: req.Payment.PaymentIntentID, Err: err}
	}

	return &SettlementResult{Kind: OutcomeSucceeded, Ride: ride}, nil
}
