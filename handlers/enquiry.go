package handlers

import (
	"net/http"
	"strconv"

	"solvo/middleware"
	"solvo/services/enquiry"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// CreateEnquiryHandler submits an accommodation enquiry.
func (hb *HandlerBundle) CreateEnquiryHandler(c *gin.Context) {
	var in enquiry.FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid enquiry payload", err.Error())
		return
	}
	created, err := hb.Enquiry.Submit(c.Request.Context(), middleware.GetAuth(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// EnquiryPaymentHandler initiates payment for an existing enquiry. A
// payment failure leaves the enquiry untouched; the client may retry with
// another method.
func (hb *HandlerBundle) EnquiryPaymentHandler(c *gin.Context) {
	enquiryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || enquiryID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid enquiry id", c.Param("id"))
		return
	}
	var req struct {
		enquiry.PaymentInput
		AccommodationID int `json:"accommodation"`
		Guests          int `json:"guests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment payload", err.Error())
		return
	}
	if req.Guests < 1 {
		req.Guests = 1
	}
	result, err := hb.Enquiry.Pay(c.Request.Context(), middleware.GetAuth(c), enquiryID, req.AccommodationID, req.Guests, req.PaymentInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
