package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/mockapi"
)

type BookingHandler struct {
	store *mockapi.Store
}

type createBookingRequest struct {
	UserID     string             `json:"user_id"`
	ScheduleID int64              `json:"schedule_id" binding:"required"`
	TotalPrice float64            `json:"total_price"`
	Passengers []domain.Passenger `json:"passengers" binding:"required"`
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

func NewBookingHandler(store *mockapi.Store) *BookingHandler {
	return &BookingHandler{store: store}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/history", h.history)
	router.PUT("/bookings/:id/status", h.updateStatus)
	router.GET("/payment/:bookingId", h.payment)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.TotalPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "total_price must be non-negative"})
		return
	}

	// The booking is always attributed to the authenticated caller,
	// whatever user_id the form carried.
	user, _ := currentUser(c)
	booking, err := h.store.CreateBooking(user.ID, req.ScheduleID, req.TotalPrice, req.Passengers)
	if err != nil {
		if errors.Is(err, mockapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": booking})
}

func (h *BookingHandler) history(c *gin.Context) {
	user, _ := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"data": h.store.History(user.ID)})
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	booking, err := h.store.UpdateBookingStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, mockapi.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

// payment returns the checkout URL without the data envelope, matching
// the real backend's bare response for this endpoint.
func (h *BookingHandler) payment(c *gin.Context) {
	url, ok := h.store.PaymentURL(c.Param("bookingId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_url": url})
}
