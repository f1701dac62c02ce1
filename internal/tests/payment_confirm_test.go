package tests

import (
	"context"
	"errors"
	"testing"

	"yatra/internal/domain"
	"yatra/internal/service"
)

// ──────────────────────────────────────────────
// 1. PAYMENT CONFIRMATION STATE MACHINE
// ──────────────────────────────────────────────

func TestConfirmPayment_AlreadySucceeded_NoConfirmCall(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	gw.AddIntent(&domain.PaymentIntent{
		ID:     "pi_1",
		Status: domain.IntentStatusSucceeded,
	})

	paymentService := service.NewPaymentService(gw)

	outcome, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if outcome.Kind != service.OutcomeSucceeded {
		t.Errorf("expected Succeeded, got %s", outcome.Kind)
	}
	if gw.AttachCalls != 0 {
		t.Errorf("expected no attach call, got %d", gw.AttachCalls)
	}
	if gw.ConfirmCalls != 0 {
		t.Errorf("expected no confirm call, got %d", gw.ConfirmCalls)
	}
}

func TestConfirmPayment_RequiresConfirmation_UsesSuppliedMethod(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	gw.AddIntent(&domain.PaymentIntent{
		ID:            "pi_1",
		Status:        domain.IntentStatusRequiresConfirmation,
		PaymentMethod: "pm_existing",
	})

	paymentService := service.NewPaymentService(gw)

	outcome, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		PaymentMethodID: "pm_supplied",
		CustomerID:      "cus_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if outcome.Kind != service.OutcomeSucceeded {
		t.Errorf("expected Succeeded, got %s", outcome.Kind)
	}
	if gw.AttachCalls != 1 {
		t.Errorf("expected one attach call, got %d", gw.AttachCalls)
	}
	if gw.LastConfirmMethod != "pm_supplied" {
		t.Errorf("expected confirm with pm_supplied, got %q", gw.LastConfirmMethod)
	}
}

func TestConfirmPayment_RequiresConfirmation_FallsBackToIntentMethod(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	gw.AddIntent(&domain.PaymentIntent{
		ID:            "pi_1",
		Status:        domain.IntentStatusRequiresConfirmation,
		PaymentMethod: "pm_existing",
	})

	paymentService := service.NewPaymentService(gw)

	_, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if gw.AttachCalls != 0 {
		t.Errorf("expected no attach call without a supplied method, got %d", gw.AttachCalls)
	}
	if gw.LastConfirmMethod != "pm_existing" {
		t.Errorf("expected confirm with the intent's method, got %q", gw.LastConfirmMethod)
	}
}

func TestConfirmPayment_RequiresAction_CarriesClientSecretUnchanged(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.IntentStatus{
		domain.IntentStatusRequiresAction,
		domain.IntentStatusRequiresSourceAction,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			gw := NewMockPaymentGateway()
			gw.AddIntent(&domain.PaymentIntent{
				ID:           "pi_1",
				Status:       status,
				ClientSecret: "pi_1_secret_abc",
			})

			paymentService := service.NewPaymentService(gw)

			outcome, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
				PaymentIntentID: "pi_1",
				CustomerID:      "cus_1",
			})
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if outcome.Kind != service.OutcomeRequiresAction {
				t.Errorf("expected RequiresAction, got %s", outcome.Kind)
			}
			if outcome.ClientSecret != "pi_1_secret_abc" {
				t.Errorf("expected unmodified client secret, got %q", outcome.ClientSecret)
			}
		})
	}
}

func TestConfirmPayment_OtherStatus_PendingWithRawStatus(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	gw.AddIntent(&domain.PaymentIntent{
		ID:     "pi_1",
		Status: domain.IntentStatus("processing"),
	})

	paymentService := service.NewPaymentService(gw)

	outcome, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if outcome.Kind != service.OutcomePending {
		t.Errorf("expected Pending, got %s", outcome.Kind)
	}
	if outcome.RawStatus != "processing" {
		t.Errorf("expected raw status %q, got %q", "processing", outcome.RawStatus)
	}
}

func TestConfirmPayment_ConfirmationTransition_Succeeds(t *testing.T) {
	t.Parallel()

	// retrieve -> requires_confirmation, confirm -> succeeded
	gw := NewMockPaymentGateway()
	gw.AddIntent(&domain.PaymentIntent{
		ID:     "pi_1",
		Status: domain.IntentStatusRequiresConfirmation,
	})
	gw.ConfirmStatus = domain.IntentStatusSucceeded

	paymentService := service.NewPaymentService(gw)

	outcome, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		PaymentMethodID: "pm_card",
		CustomerID:      "cus_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if outcome.Kind != service.OutcomeSucceeded {
		t.Errorf("expected Succeeded, got %s", outcome.Kind)
	}
	if outcome.Intent.Status != domain.IntentStatusSucceeded {
		t.Errorf("expected intent status succeeded, got %s", outcome.Intent.Status)
	}
	if gw.RetrieveCalls != 1 || gw.ConfirmCalls != 1 {
		t.Errorf("expected one retrieve and one confirm, got %d/%d", gw.RetrieveCalls, gw.ConfirmCalls)
	}
}

func TestConfirmPayment_MissingRequiredFields_NoGatewayCalls(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  service.ConfirmPaymentRequest
	}{
		{
			name: "missing payment intent id",
			req:  service.ConfirmPaymentRequest{CustomerID: "cus_1"},
		},
		{
			name: "missing customer id",
			req:  service.ConfirmPaymentRequest{PaymentIntentID: "pi_1"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gw := NewMockPaymentGateway()
			paymentService := service.NewPaymentService(gw)

			_, err := paymentService.ConfirmPayment(context.Background(), tc.req)

			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if gw.AttachCalls != 0 || gw.RetrieveCalls != 0 || gw.ConfirmCalls != 0 {
				t.Error("expected zero gateway calls on validation failure")
			}
		})
	}
}

func TestConfirmPayment_GatewayFailure_SurfacesCodeAndMessage(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	gw.RetrieveError = &service.GatewayError{Code: "card_declined", Msg: "Your card was declined."}

	paymentService := service.NewPaymentService(gw)

	_, err := paymentService.ConfirmPayment(context.Background(), service.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
	})

	var gatewayErr *service.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got: %v", err)
	}
	if gatewayErr.Code != "card_declined" {
		t.Errorf("expected gateway code surfaced verbatim, got %q", gatewayErr.Code)
	}
	if gw.ConfirmCalls != 0 {
		t.Error("expected no confirm attempt after a failed retrieve")
	}
}

// ──────────────────────────────────────────────
// 2. CHECKOUT INITIATION
// ──────────────────────────────────────────────

func TestInitiateCheckout_ValidInput_ReturnsSession(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	paymentService := service.NewPaymentService(gw)

	session, err := paymentService.InitiateCheckout(context.Background(), service.InitiateCheckoutRequest{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Amount: 12.50,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if session.CustomerID == "" || session.EphemeralKeySecret == "" || session.PaymentIntentClientSecret == "" {
		t.Error("expected a complete checkout session")
	}
	if gw.CreateCustomerCalls != 1 || gw.CreateKeyCalls != 1 || gw.CreateIntentCalls != 1 {
		t.Errorf("expected one call each, got %d/%d/%d", gw.CreateCustomerCalls, gw.CreateKeyCalls, gw.CreateIntentCalls)
	}
}

func TestInitiateCheckout_AmountConvertedToMinorUnits(t *testing.T) {
	t.Parallel()

	gw := NewMockPaymentGateway()
	paymentService := service.NewPaymentService(gw)

	session, err := paymentService.InitiateCheckout(context.Background(), service.InitiateCheckoutRequest{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Amount: 19.99,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	intent, err := gw.RetrieveIntent(context.Background(), session.PaymentIntentID)
	if err != nil {
		t.Fatalf("expected intent to exist, got: %v", err)
	}
	if intent.Amount != 1999 {
		t.Errorf("expected 1999 minor units, got %d", intent.Amount)
	}
}

func TestInitiateCheckout_InvalidInput_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  service.InitiateCheckoutRequest
	}{
		{name: "missing name", req: service.InitiateCheckoutRequest{Email: "a@b.com", Amount: 10}},
		{name: "missing email", req: service.InitiateCheckoutRequest{Name: "A", Amount: 10}},
		{name: "malformed email", req: service.InitiateCheckoutRequest{Name: "A", Email: "not-an-email", Amount: 10}},
		{name: "zero amount", req: service.InitiateCheckoutRequest{Name: "A", Email: "a@b.com", Amount: 0}},
		{name: "negative amount", req: service.InitiateCheckoutRequest{Name: "A", Email: "a@b.com", Amount: -5}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gw := NewMockPaymentGateway()
			paymentService := service.NewPaymentService(gw)

			_, err := paymentService.InitiateCheckout(context.Background(), tc.req)

			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if gw.CreateCustomerCalls != 0 {
				t.Error("expected zero gateway calls on validation failure")
			}
		})
	}
}
