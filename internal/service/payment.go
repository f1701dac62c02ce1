package service

import (
	"context"
	"math"

	"github.com/badoux/checkmail"

	"yatra/internal/domain"
)

// PaymentGateway is the narrow interface to the payment gateway. The
// gateway is the sole authority over payment state; nothing it owns is
// persisted locally.
type PaymentGateway interface {
	// AttachPaymentMethod attaches a payment method to a customer.
	// Attaching a method that is already attached is not an error.
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error

	// RetrieveIntent fetches the current state of a payment intent.
	RetrieveIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error)

	// ConfirmIntent confirms a payment intent with the given payment method.
	ConfirmIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*domain.PaymentIntent, error)

	// CreateCustomer creates a billing customer.
	CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error)

	// CreateEphemeralKey issues a short-lived client credential for a customer.
	CreateEphemeralKey(ctx context.Context, customerID string) (string, error)

	// CreateIntent creates a payment intent for the given amount.
	CreateIntent(ctx context.Context, amountMinor int64, customerID string) (*domain.PaymentIntent, error)
}

// OutcomeKind classifies the terminal result of a confirmation round trip.
type OutcomeKind string

const (
	// OutcomeSucceeded means the gateway reached terminal success.
	OutcomeSucceeded OutcomeKind = "succeeded"
	// OutcomeRequiresAction means the client must run additional
	// authentication before resubmitting.
	OutcomeRequiresAction OutcomeKind = "requires_action"
	// OutcomePending means the intent is in some other gateway state;
	// polling or re-invocation is the caller's responsibility.
	OutcomePending OutcomeKind = "pending"
)

// PaymentOutcome is the caller-facing interpretation of the gateway's
// intent status after a confirmation round trip.
type PaymentOutcome struct {
	Kind         OutcomeKind
	ClientSecret string // set for RequiresAction, unchanged from the intent
	RawStatus    string // set for Pending, the gateway's literal status
	Intent       *domain.PaymentIntent
}

// PaymentService drives a gateway payment intent through its confirmation
// state machine. It has no local side effects.
type PaymentService struct {
	gateway PaymentGateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// ConfirmPaymentRequest contains the parameters for confirming a payment.
type ConfirmPaymentRequest struct {
	PaymentIntentID string
	PaymentMethodID string // optional
	CustomerID      string
}

// ConfirmPayment attaches the payment method if one was supplied, confirms
// the intent when the gateway asks for confirmation, and maps the resulting
// status to exactly one outcome. Gateway failures are never retried here;
// resubmitting (e.g. with a different card) is the caller's decision.
func (s *PaymentService) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*PaymentOutcome, error) {
	if req.PaymentIntentID == "" {
		return nil, newValidationError("payment_intent_id", "required")
	}
	if req.CustomerID == "" {
		return nil, newValidationError("customer_id", "required")
	}

	if req.PaymentMethodID != "" {
		if err := s.gateway.AttachPaymentMethod(ctx, req.PaymentMethodID, req.CustomerID); err != nil {
			return nil, err
		}
	}

	intent, err := s.gateway.RetrieveIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	if intent.Status == domain.IntentStatusRequiresConfirmation {
		method := req.PaymentMethodID
		if method == "" {
			method = intent.PaymentMethod
		}
		intent, err = s.gateway.ConfirmIntent(ctx, req.PaymentIntentID, method)
		if err != nil {
			return nil, err
		}
	}

	switch intent.Status {
	case domain.IntentStatusSucceeded:
		return &PaymentOutcome{Kind: OutcomeSucceeded, Intent: intent}, nil
	case domain.IntentStatusRequiresAction, domain.IntentStatusRequiresSourceAction:
		return &PaymentOutcome{
			Kind:         OutcomeRequiresAction,
			ClientSecret: intent.ClientSecret,
			Intent:       intent,
		}, nil
	default:
		return &PaymentOutcome{
			Kind:      OutcomePending,
			RawStatus: string(intent.Status),
			Intent:    intent,
		}, nil
	}
}

// InitiateCheckoutRequest contains the parameters for opening a checkout.
type InitiateCheckoutRequest struct {
	Name   string
	Email  string
	Amount float64 // major currency units
}

// InitiateCheckout creates the gateway customer, a short-lived client
// credential for it, and the payment intent the client will confirm.
func (s *PaymentService) InitiateCheckout(ctx context.Context, req InitiateCheckoutRequest) (*domain.CheckoutSession, error) {
	if req.Name == "" {
		return nil, newValidationError("name", "required")
	}
	if req.Email == "" {
		return nil, newValidationError("email", "required")
	}
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return nil, newValidationError("email", "malformed address")
	}
	if req.Amount <= 0 {
		return nil, newValidationError("amount", "must be positive")
	}

	customer, err := s.gateway.CreateCustomer(ctx, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	keySecret, err := s.gateway.CreateEphemeralKey(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	amountMinor := int64(math.Round(req.Amount * 100))
	intent, err := s.gateway.CreateIntent(ctx, amountMinor, customer.ID)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		PaymentIntentID:           intent.ID,
		PaymentIntentClientSecret: intent.ClientSecret,
		EphemeralKeySecret:        keySecret,
		CustomerID:                customer.ID,
	}, nil
}
