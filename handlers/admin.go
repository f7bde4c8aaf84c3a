package handlers

import (
	"net/http"
	"strconv"

	"solvo/middleware"
	"solvo/models"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
}

// UpdateBookingStatusHandler changes a booking's status from the admin
// view. The upstream enforces admin permissions; the gateway only shapes
// the request.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id", c.Param("id"))
		return
	}
	var req struct {
		Status        string `json:"status" binding:"required"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Status is required", err.Error())
		return
	}
	if !validBookingStatuses[req.Status] {
		utils.JSONError(c, http.StatusBadRequest, "Unknown booking status", req.Status)
		return
	}

	auth := middleware.GetAuth(c)
	current, err := hb.API.Booking(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}
	current.Status = req.Status
	if req.PaymentStatus != "" {
		current.PaymentStatus = req.PaymentStatus
	}
	updated, err := hb.API.UpdateBooking(c.Request.Context(), auth, id, *current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
