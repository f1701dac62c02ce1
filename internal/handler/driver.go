package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra/internal/domain"
	"yatra/internal/repository"
)

// DriverHandler handles HTTP requests for the driver directory.
type DriverHandler struct {
	driverRepo repository.DriverRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverRepo repository.DriverRepository) *DriverHandler {
	return &DriverHandler{driverRepo: driverRepo}
}

// RegisterDriverRequest is the HTTP request body for registering a driver.
type RegisterDriverRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	ProfileImageURL string  `json:"profile_image_url"`
	CarImageURL     string  `json:"car_image_url"`
	CarSeats        int     `json:"car_seats"`
	Rating          float64 `json:"rating"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	ProfileImageURL string  `json:"profile_image_url,omitempty"`
	CarImageURL     string  `json:"car_image_url,omitempty"`
	CarSeats        int     `json:"car_seats"`
	Rating          float64 `json:"rating"`
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "first_name and last_name are required"})
		return
	}

	if req.CarSeats <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "car_seats must be positive"})
		return
	}

	driver := &domain.Driver{
		ID:              uuid.New().String(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		CarImageURL:     req.CarImageURL,
		CarSeats:        req.CarSeats,
		Rating:          req.Rating,
	}

	if err := h.driverRepo.Create(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: driverResponse(driver)})
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, driverResponse(d))
	}

	c.JSON(http.StatusOK, DataResponse{Data: response})
}

func driverResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:              driver.ID,
		FirstName:       driver.FirstName,
		LastName:        driver.LastName,
		ProfileImageURL: driver.ProfileImageURL,
		CarImageURL:     driver.CarImageURL,
		CarSeats:        driver.CarSeats,
		Rating:          driver.Rating,
	}
}
