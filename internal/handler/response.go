package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/repository"
	"yatra/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// partialSettlementResponse is the dedicated body for the partial-failure
// state: payment confirmed, booking failed. Callers must surface it as a
// support case, not a generic error.
type partialSettlementResponse struct {
	Error           string `json:"error"`
	Code            string `json:"code"`
	PaymentIntentID string `json:"payment_intent_id"`
	Details         string `json:"details"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var partial *service.PartialSettlementError
	if errors.As(err, &partial) {
		c.JSON(http.StatusInternalServerError, partialSettlementResponse{
			Error:           "payment confirmed but booking failed, contact support",
			Code:            "partial_settlement",
			PaymentIntentID: partial.PaymentIntentID,
			Details:         partial.Error(),
		})
		return
	}

	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: errorTitle(err), Details: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var (
		validationErr *service.ValidationError
		gatewayErr    *service.GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateRide):
		return http.StatusConflict
	case errors.As(err, &gatewayErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorTitle picks the short, stable error string clients match on.
func errorTitle(err error) string {
	var (
		validationErr *service.ValidationError
		gatewayErr    *service.GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		return "Missing required fields"
	case errors.Is(err, repository.ErrDuplicateRide):
		return "Ride already recorded"
	case errors.As(err, &gatewayErr):
		return "Payment gateway error"
	default:
		return "Internal Server Error"
	}
}
