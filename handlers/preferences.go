package handlers

import (
	"encoding/json"
	"net/http"

	"solvo/middleware"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// PreferencesHandler returns the visitor's stored display preferences.
func (hb *HandlerBundle) PreferencesHandler(c *gin.Context) {
	state := middleware.GetState(c)
	c.JSON(http.StatusOK, gin.H{
		"dark_mode":      state.DarkMode,
		"cookie_consent": state.CookieConsent,
		"safari_filters": json.RawMessage(filtersOrNull(state.SafariFilters)),
	})
}

// UpdatePreferencesHandler stores display preferences on the session.
// Filters are kept as an opaque JSON blob the way the browser stored them.
func (hb *HandlerBundle) UpdatePreferencesHandler(c *gin.Context) {
	var req struct {
		DarkMode      *bool           `json:"dark_mode"`
		CookieConsent *bool           `json:"cookie_consent"`
		SafariFilters json.RawMessage `json:"safari_filters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid preferences payload", err.Error())
		return
	}
	state := middleware.GetState(c)
	if req.DarkMode != nil {
		state.DarkMode = *req.DarkMode
	}
	if req.CookieConsent != nil {
		state.CookieConsent = *req.CookieConsent
	}
	if len(req.SafariFilters) > 0 {
		if !json.Valid(req.SafariFilters) {
			utils.JSONError(c, http.StatusBadRequest, "safari_filters must be valid JSON", "")
			return
		}
		state.SafariFilters = string(req.SafariFilters)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferences saved."})
}

func filtersOrNull(filters string) string {
	if filters == "" {
		return "null"
	}
	return filters
}
