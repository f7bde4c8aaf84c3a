package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"solvo/middleware"
	"solvo/models"
	"solvo/services/dashboard"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler assembles the dashboard view. Feeds are fetched fresh on
// every request.
func (hb *HandlerBundle) DashboardHandler(c *gin.Context) {
	view, err := hb.Dashboard.Load(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExpandEnquiryHandler marks an enquiry read and returns the refreshed
// enquiry list.
func (hb *HandlerBundle) ExpandEnquiryHandler(c *gin.Context) {
	enquiryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || enquiryID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid enquiry id", c.Param("id"))
		return
	}
	enquiries, err := hb.Dashboard.ExpandEnquiry(c.Request.Context(), middleware.GetAuth(c), enquiryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

// ReplyEnquiryHandler posts a user message on an enquiry thread.
func (hb *HandlerBundle) ReplyEnquiryHandler(c *gin.Context) {
	enquiryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || enquiryID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid enquiry id", c.Param("id"))
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Message is required", err.Error())
		return
	}
	enquiries, err := hb.Dashboard.Reply(c.Request.Context(), middleware.GetAuth(c), enquiryID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

// BookingReceiptPDFHandler streams a booking receipt as PDF.
func (hb *HandlerBundle) BookingReceiptPDFHandler(c *gin.Context) {
	b, ok := hb.loadBooking(c)
	if !ok {
		return
	}
	pdfBytes, filename, err := dashboard.BuildReceiptPDF(b)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not generate receipt", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// BookingReceiptPrintHandler serves the printable receipt page.
func (hb *HandlerBundle) BookingReceiptPrintHandler(c *gin.Context) {
	b, ok := hb.loadBooking(c)
	if !ok {
		return
	}
	page, err := dashboard.RenderReceiptHTML(b)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not render receipt", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (hb *HandlerBundle) loadBooking(c *gin.Context) (*models.Booking, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id", c.Param("id"))
		return nil, false
	}
	b, err := hb.Dashboard.Booking(c.Request.Context(), middleware.GetAuth(c), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return b, true
}

// ProfileHandler returns the visitor's profile.
func (hb *HandlerBundle) ProfileHandler(c *gin.Context) {
	profile, err := hb.API.Profile(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler pushes profile changes. A multipart submission may
// carry a new profile image.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	var update models.ProfileUpdate
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&update); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
			return
		}
	} else {
		update.Phone = c.PostForm("phone")
		update.Password = c.PostForm("password")
		if prefs := c.PostFormArray("preferences"); len(prefs) > 0 {
			update.Preferences = prefs
		}
		image, err := readFormFile(c, "image")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Could not read profile image", err.Error())
			return
		}
		update.Image = image
	}
	profile, err := hb.Dashboard.UpdateProfile(c.Request.Context(), middleware.GetAuth(c), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
