package handlers

import (
	"net/http"
	"strconv"

	"solvo/middleware"
	"solvo/services/catalog"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// DestinationsHandler lists destinations.
func (hb *HandlerBundle) DestinationsHandler(c *gin.Context) {
	dests, err := hb.Catalog.Destinations(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dests)
}

// SafarisHandler lists safaris with filter and sort applied from the query
// string.
func (hb *HandlerBundle) SafarisHandler(c *gin.Context) {
	var filter catalog.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	safaris, err := hb.Catalog.Safaris(c.Request.Context(), middleware.GetAuth(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, safaris)
}

// SafariHandler returns one safari with its itinerary.
func (hb *HandlerBundle) SafariHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid safari id", c.Param("id"))
		return
	}
	safari, err := hb.Catalog.Safari(c.Request.Context(), middleware.GetAuth(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, safari)
}

// AccommodationsHandler lists accommodations.
func (hb *HandlerBundle) AccommodationsHandler(c *gin.Context) {
	accs, err := hb.Catalog.Accommodations(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accs)
}

// AccommodationHandler returns one accommodation.
func (hb *HandlerBundle) AccommodationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid accommodation id", c.Param("id"))
		return
	}
	acc, err := hb.Catalog.Accommodation(c.Request.Context(), middleware.GetAuth(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// FeaturedAccommodationsHandler lists the landing-page accommodations.
func (hb *HandlerBundle) FeaturedAccommodationsHandler(c *gin.Context) {
	accs, err := hb.Catalog.Featured(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accs)
}

// CurrencySymbolsHandler lists supported currency codes.
func (hb *HandlerBundle) CurrencySymbolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symbols": hb.Converter.Symbols(c.Request.Context())})
}

// CurrencyConvertHandler converts an amount between currencies.
func (hb *HandlerBundle) CurrencyConvertHandler(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	amount, err := strconv.ParseFloat(c.DefaultQuery("amount", "1"), 64)
	if err != nil || from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid conversion query", "from, to and amount are required")
		return
	}
	result, err := hb.Converter.Convert(c.Request.Context(), from, to, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "amount": amount, "result": result})
}
