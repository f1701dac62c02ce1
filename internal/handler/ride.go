package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatra/internal/domain"
	"yatra/internal/service"
)

// RideHandler handles HTTP requests for ride records.
type RideHandler struct {
	rideService   *service.RideService
	repairService *service.RepairService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, repairService *service.RepairService) *RideHandler {
	return &RideHandler{
		rideService:   rideService,
		repairService: repairService,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	OriginAddress      string  `json:"origin_address"`
	DestinationAddress string  `json:"destination_address"`
	OriginLat          float64 `json:"origin_lat"`
	OriginLng          float64 `json:"origin_lng"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	RideTime           int     `json:"ride_time"`
	FarePrice          int64   `json:"fare_price"`
	PaymentStatus      string  `json:"payment_status"`
	PaymentIntentID    string  `json:"payment_intent_id"`
	DriverID           string  `json:"driver_id"`
	RiderID            string  `json:"rider_id"`
}

// RideResponse is the HTTP representation of a ride record.
type RideResponse struct {
	ID                 string          `json:"id"`
	RiderID            string          `json:"rider_id"`
	DriverID           string          `json:"driver_id"`
	OriginAddress      string          `json:"origin_address"`
	DestinationAddress string          `json:"destination_address"`
	OriginLat          float64         `json:"origin_lat"`
	OriginLng          float64         `json:"origin_lng"`
	DestinationLat     float64         `json:"destination_lat"`
	DestinationLng     float64         `json:"destination_lng"`
	RideTime           int             `json:"ride_time"`
	FarePrice          int64           `json:"fare_price"`
	PaymentStatus      string          `json:"payment_status"`
	PaymentIntentID    string          `json:"payment_intent_id,omitempty"`
	CreatedAt          string          `json:"created_at"`
	Driver             *DriverResponse `json:"driver,omitempty"`
}

// RepairRequest is the HTTP request body for the rider backfill sweep.
type RepairRequest struct {
	RiderID string `json:"rider_id"`
}

// DataResponse wraps a payload the way the client expects it.
type DataResponse struct {
	Data any `json:"data"`
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
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
		PaymentStatus:      req.PaymentStatus,
		PaymentIntentID:    req.PaymentIntentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: rideResponse(ride)})
}

// ListRiderRides handles GET /v1/riders/:id/rides
func (h *RideHandler) ListRiderRides(c *gin.Context) {
	riderID := c.Param("id")

	rides, err := h.rideService.ListRiderRides(c.Request.Context(), riderID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		rr := rideResponse(&r.Ride)
		driver := driverResponse(&r.Driver)
		rr.Driver = &driver
		response = append(response, rr)
	}

	c.JSON(http.StatusOK, DataResponse{Data: response})
}

// RepairRiderRides handles POST /v1/rides/repair
func (h *RideHandler) RepairRiderRides(c *gin.Context) {
	var req RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.repairService.BackfillRider(c.Request.Context(), req.RiderID)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]RideResponse, 0, len(result.Rides))
	for _, r := range result.Rides {
		rows = append(rows, rideResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Updated %d rides with rider_id %s", result.Updated, req.RiderID),
		"data":    rows,
	})
}

func rideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:                 ride.ID,
		RiderID:            ride.RiderID,
		DriverID:           ride.DriverID,
		OriginAddress:      ride.OriginAddress,
		DestinationAddress: ride.DestinationAddress,
		OriginLat:          ride.OriginLat,
		OriginLng:          ride.OriginLng,
		DestinationLat:     ride.DestinationLat,
		DestinationLng:     ride.DestinationLng,
		RideTime:           ride.RideTime,
		FarePrice:          ride.FarePrice,
		PaymentStatus:      string(ride.PaymentStatus),
		PaymentIntentID:    ride.PaymentIntentID,
		CreatedAt:          ride.CreatedAt.Format(time.RFC3339),
	}
}
