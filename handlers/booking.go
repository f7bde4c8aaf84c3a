package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"solvo/middleware"
	"solvo/models"
	"solvo/services/booking"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// BookingQuoteHandler prices a safari for a guest count, for the live total
// shown on the form.
func (hb *HandlerBundle) BookingQuoteHandler(c *gin.Context) {
	safariID, err := strconv.Atoi(c.Query("safari"))
	if err != nil || safariID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid safari id", c.Query("safari"))
		return
	}
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "1"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid guest count", c.Query("guests"))
		return
	}
	quote, err := hb.Booking.QuoteForSafari(c.Request.Context(), middleware.GetAuth(c), safariID, guests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateBookingHandler submits the booking form. A multipart submission may
// carry a proof_of_payment file; JSON submissions never do.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var in booking.FormInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&in); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking form", err.Error())
			return
		}
		proof, err := readFormFile(c, "proof_of_payment")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Could not read proof of payment", err.Error())
			return
		}
		in.Proof = proof
	} else {
		if err := c.ShouldBindJSON(&in); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
			return
		}
	}

	created, err := hb.Booking.Submit(c.Request.Context(), middleware.GetAuth(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetState(c).LastBookingID = created.ID
	c.JSON(http.StatusCreated, created)
}

// BookingConfirmationHandler returns the booking the visitor just created.
func (hb *HandlerBundle) BookingConfirmationHandler(c *gin.Context) {
	state := middleware.GetState(c)
	if state.LastBookingID == 0 {
		utils.JSONError(c, http.StatusNotFound, "No recent booking", "")
		return
	}
	b, err := hb.Dashboard.Booking(c.Request.Context(), middleware.GetAuth(c), state.LastBookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// BookingCheckoutHandler starts a hosted checkout for a booking.
func (hb *HandlerBundle) BookingCheckoutHandler(c *gin.Context) {
	var req struct {
		Provider string  `json:"provider"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Email    string  `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checkout payload", err.Error())
		return
	}
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil || bookingID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id", c.Param("id"))
		return
	}
	resp, err := hb.Booking.StartCheckout(c.Request.Context(), middleware.GetAuth(c), req.Provider, models.StripeRequest{
		Amount:    req.Amount,
		Currency:  req.Currency,
		BookingID: bookingID,
		Email:     req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readFormFile loads an optional multipart file part into memory. A missing
// part returns nil without error.
func readFormFile(c *gin.Context, field string) (*models.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &models.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
