package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/service"
)

// SettlementHandler handles the end-to-end book-and-pay flow.
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// SettleRideRequest is the HTTP request body for settling a ride.
type SettleRideRequest struct {
	PaymentMethodID    string  `json:"payment_method_id"`
	PaymentIntentID    string  `json:"payment_intent_id"`
	CustomerID         string  `json:"customer_id"`
	OriginAddress      string  `json:"origin_address"`
	DestinationAddress string  `json:"destination_address"`
	OriginLat          float64 `json:"origin_lat"`
	OriginLng          float64 `json:"origin_lng"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	RideTime           int     `json:"ride_time"`
	FarePrice          int64   `json:"fare_price"`
	DriverID           string  `json:"driver_id"`
	RiderID            string  `json:"rider_id"`
}

// SettleRide handles POST /v1/settlements
func (h *SettlementHandler) SettleRide(c *gin.Context) {
	var req SettleRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.settlementService.SettleRide(c.Request.Context(), service.SettleRideRequest{
		Payment: service.ConfirmPaymentRequest{
			PaymentIntentID: req.PaymentIntentID,
			PaymentMethodID: req.PaymentMethodID,
			CustomerID:      req.CustomerID,
		},
		Ride: service.CreateRideRequest{
			RiderID:            req.RiderID,
			DriverID:           req.DriverID,
			OriginAddress:      req.OriginAddress,
			DestinationAddress: req.DestinationAddress,
			OriginLat:          req.OriginLat,
			OriginLng:          req.OriginLng,
			DestinationLat:     req.DestinationLat,
			DestinationLng:     req.DestinationLng,
			RideTime:           req.RideTime,
			FarePrice:          req.FarePrice,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	switch result.Kind {
	case service.OutcomeSucceeded:
		status := http.StatusCreated
		if result.Duplicate {
			status = http.StatusOK
		}
		c.JSON(status, DataResponse{Data: rideResponse(result.Ride)})
	case service.OutcomeRequiresAction:
		c.JSON(http.StatusOK, ConfirmPaymentResponse{
			RequiresAction:            true,
			PaymentIntentClientSecret: result.ClientSecret,
		})
	default:
		c.JSON(http.StatusOK, ConfirmPaymentResponse{
			Success:        false,
			RequiresAction: false,
			Message:        fmt.Sprintf("Payment status: %s", result.RawStatus),
		})
	}
}
