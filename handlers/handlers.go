// Package handlers wires the HTTP surface to the services. Each handler
// binds input, calls one service method and translates the outcome.
package handlers

import (
	"errors"
	"net/http"

	"solvo/middleware"
	"solvo/services/booking"
	"solvo/services/catalog"
	"solvo/services/chat"
	"solvo/services/dashboard"
	"solvo/services/enquiry"
	"solvo/upstream"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handler dependencies so route registration
// takes a single value.
type HandlerBundle struct {
	API       *upstream.Client
	Booking   *booking.Service
	Enquiry   *enquiry.Service
	Dashboard *dashboard.Service
	Chat      *chat.Service
	Catalog   *catalog.Service
	Converter *catalog.Converter
}

// respondError maps service errors onto HTTP responses: field validation to
// 400 with the field messages, expired auth to 401 with a login redirect,
// upstream failures to their own status and message, anything else to 500.
func respondError(c *gin.Context, err error) {
	var bookingErr *booking.ValidationError
	if errors.As(err, &bookingErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "fields": bookingErr.Fields})
		return
	}
	var enquiryErr *enquiry.ValidationError
	if errors.As(err, &enquiryErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "fields": enquiryErr.Fields})
		return
	}
	if upstream.IsAuthExpired(err) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "session expired, please log in again",
			"redirect": middleware.LoginRedirect,
		})
		return
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Detail
		if detail == "" {
			detail = "The booking service rejected the request."
		}
		utils.JSONError(c, apiErr.StatusCode, detail, "")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", err.Error())
}
