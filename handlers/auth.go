package handlers

import (
	"net/http"

	"solvo/middleware"
	"solvo/models"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHandler creates an upstream account.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}
	if err := hb.API.Register(c.Request.Context(), reg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created. You can now log in."})
}

// LoginHandler exchanges credentials for a token pair and stores it on the
// visitor session.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}
	tokens, err := hb.API.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}
	state := middleware.GetState(c)
	state.AccessToken = tokens.Access
	state.RefreshToken = tokens.Refresh
	state.Username = creds.Username
	c.JSON(http.StatusOK, gin.H{"username": creds.Username})
}

// LogoutHandler drops the stored tokens.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	middleware.GetState(c).ClearAuth()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// SessionHandler reports who the visitor is, for page bootstrapping.
// token_expired hints that the next API call will go through a refresh.
func (hb *HandlerBundle) SessionHandler(c *gin.Context) {
	state := middleware.GetState(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated":  state.Authenticated(),
		"username":       state.Username,
		"dark_mode":      state.DarkMode,
		"cookie_consent": state.CookieConsent,
		"token_expired":  state.Authenticated() && utils.TokenExpired(state.AccessToken),
	})
}
