package gateway

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"yatra/internal/domain"
	"yatra/internal/service"
)

// StripeGateway implements service.PaymentGateway against the Stripe API.
// The client is injected at process start; there is no package-level key.
type StripeGateway struct {
	api      *client.API
	currency string
}

// Ensure the service contract is satisfied.
var _ service.PaymentGateway = (*StripeGateway)(nil)

// NewStripeGateway creates a gateway bound to the given secret key.
// currency is the three-letter ISO code all intents are created in.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	return &StripeGateway{
		api:      client.New(secretKey, nil),
		currency: currency,
	}
}

// AttachPaymentMethod attaches a payment method to a customer. Stripe
// rejects re-attaching an already-attached method; that is success here.
func (g *StripeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	_, err := g.api.PaymentMethods.Attach(paymentMethodID, params)
	if err != nil {
		if isAlreadyAttached(err) {
			return nil
		}
		return wrapStripeError(err)
	}
	return nil
}

// RetrieveIntent fetches the current state of a payment intent.
func (g *StripeGateway) RetrieveIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return toDomainIntent(intent), nil
}

// ConfirmIntent confirms a payment intent with the given payment method.
func (g *StripeGateway) ConfirmIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Confirm(paymentIntentID, params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return toDomainIntent(intent), nil
}

// CreateCustomer creates a billing customer.
func (g *StripeGateway) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	}
	params.Context = ctx

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return &domain.Customer{
		ID:    customer.ID,
		Name:  customer.Name,
		Email: customer.Email,
	}, nil
}

// CreateEphemeralKey issues a short-lived client credential for a customer.
func (g *StripeGateway) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(stripe.APIVersion),
	}
	params.Context = ctx

	key, err := g.api.EphemeralKeys.New(params)
	if err != nil {
		return "", wrapStripeError(err)
	}
	return key.Secret, nil
}

// CreateIntent creates a payment intent for the given amount in minor units.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, customerID string) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(g.currency),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return toDomainIntent(intent), nil
}

func toDomainIntent(intent *stripe.PaymentIntent) *domain.PaymentIntent {
	out := &domain.PaymentIntent{
		ID:           intent.ID,
		Status:       domain.IntentStatus(intent.Status),
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}
	if intent.PaymentMethod != nil {
		out.PaymentMethod = intent.PaymentMethod.ID
	}
	if intent.Customer != nil {
		out.CustomerID = intent.Customer.ID
	}
	return out
}

// wrapStripeError converts a Stripe SDK error into the service taxonomy,
// surfacing Stripe's own code and message verbatim.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &service.GatewayError{
			Code: string(stripeErr.Code),
			Msg:  stripeErr.Msg,
			Err:  err,
		}
	}
	return &service.GatewayError{Msg: err.Error(), Err: err}
}

func isAlreadyAttached(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return strings.Contains(stripeErr.Msg, "already been attached")
}
