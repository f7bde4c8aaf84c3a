package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"solvo/config"
	"solvo/models"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler forwards a contact-page submission upstream.
func (hb *HandlerBundle) ContactHandler(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid contact payload", err.Error())
		return
	}
	if err := hb.API.SendContactMessage(c.Request.Context(), msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thanks for reaching out. We'll get back to you shortly."})
}

// ContactInfoHandler returns the static contact channels, including the
// WhatsApp deep link.
func (hb *HandlerBundle) ContactInfoHandler(c *gin.Context) {
	whatsapp := fmt.Sprintf(
		"https://wa.me/%s?text=%s",
		config.AppConfig.WhatsAppNumber,
		url.QueryEscape("Hello Solvo Tours! I have a question."),
	)
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_url": whatsapp,
		"bank_account": config.AppConfig.BankAccountNumber,
	})
}
