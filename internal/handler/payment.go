package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/domain"
	"yatra/internal/service"
)

// PaymentHandler handles HTTP requests for checkout and payment confirmation.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiateCheckoutRequest is the HTTP request body for opening a checkout.
type InitiateCheckoutRequest struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Amount float64 `json:"amount"`
}

// CheckoutResponse is the HTTP response for a checkout session.
type CheckoutResponse struct {
	PaymentIntentID           string `json:"payment_intent_id"`
	PaymentIntentClientSecret string `json:"payment_intent_client_secret"`
	EphemeralKeySecret        string `json:"ephemeral_key_secret"`
	CustomerID                string `json:"customer_id"`
}

// ConfirmPaymentRequest is the HTTP request body for confirming a payment.
type ConfirmPaymentRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	CustomerID      string `json:"customer_id"`
}

// IntentResult echoes the gateway intent state back to the client.
type IntentResult struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	ClientSecret  string `json:"client_secret,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// ConfirmPaymentResponse covers all three non-error confirmation outcomes.
type ConfirmPaymentResponse struct {
	Success                   bool          `json:"success"`
	RequiresAction            bool          `json:"requires_action"`
	Message                   string        `json:"message,omitempty"`
	PaymentIntentClientSecret string        `json:"payment_intent_client_secret,omitempty"`
	Result                    *IntentResult `json:"result,omitempty"`
}

// InitiateCheckout handles POST /v1/checkout
func (h *PaymentHandler) InitiateCheckout(c *gin.Context) {
	var req InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.paymentService.InitiateCheckout(c.Request.Context(), service.InitiateCheckoutRequest{
		Name:   req.Name,
		Email:  req.Email,
		Amount: req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{
		PaymentIntentID:           session.PaymentIntentID,
		PaymentIntentClientSecret: session.PaymentIntentClientSecret,
		EphemeralKeySecret:        session.EphemeralKeySecret,
		CustomerID:                session.CustomerID,
	})
}

// ConfirmPayment handles POST /v1/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := h.paymentService.ConfirmPayment(c.Request.Context(), service.ConfirmPaymentRequest{
		PaymentIntentID: req.PaymentIntentID,
		PaymentMethodID: req.PaymentMethodID,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmResponse(outcome))
}

func confirmResponse(outcome *service.PaymentOutcome) ConfirmPaymentResponse {
	switch outcome.Kind {
	case service.OutcomeSucceeded:
		return ConfirmPaymentResponse{
			Success: true,
			Message: "Payment successful",
			Result:  intentResult(outcome.Intent),
		}
	case service.OutcomeRequiresAction:
		return ConfirmPaymentResponse{
			RequiresAction:            true,
			PaymentIntentClientSecret: outcome.ClientSecret,
			Result:                    intentResult(outcome.Intent),
		}
	default:
		return ConfirmPaymentResponse{
			Success:        false,
			RequiresAction: false,
			Message:        fmt.Sprintf("Payment status: %s", outcome.RawStatus),
			Result:         intentResult(outcome.Intent),
		}
	}
}

func intentResult(intent *domain.PaymentIntent) *IntentResult {
	if intent == nil {
		return nil
	}
	return &IntentResult{
		ID:            intent.ID,
		Status:        string(intent.Status),
		ClientSecret:  intent.ClientSecret,
		PaymentMethod: intent.PaymentMethod,
		Amount:        intent.Amount,
		Currency:      intent.Currency,
	}
}
