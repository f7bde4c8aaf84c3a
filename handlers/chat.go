package handlers

import (
	"errors"
	"net/http"

	"solvo/middleware"
	"solvo/services/chat"
	"solvo/session"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

// ChatOpenHandler returns the chat log, seeding the greeting on first open.
func (hb *HandlerBundle) ChatOpenHandler(c *gin.Context) {
	state := middleware.GetState(c)
	language := c.DefaultQuery("language", "en")
	personality := c.DefaultQuery("personality", "friendly")
	messages := hb.Chat.Open(state, language, personality)
	c.JSON(http.StatusOK, gin.H{
		"messages":      messages,
		"stage":         state.ChatFlow.Stage,
		"quick_replies": chat.QuickReplies(language),
	})
}

// ChatMessageHandler advances the chat state machine with one user input.
func (hb *HandlerBundle) ChatMessageHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Message text is required", err.Error())
		return
	}
	state := middleware.GetState(c)
	replies, err := hb.Chat.Handle(state, req.Text)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidEmail) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please enter a valid email address."})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Chat failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies, "stage": state.ChatFlow.Stage})
}

// ChatAttachmentHandler records a file attachment turn.
func (hb *HandlerBundle) ChatAttachmentHandler(c *gin.Context) {
	var req struct {
		File     string `json:"file" binding:"required"` // data URL
		FileType string `json:"fileType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Attachment data is required", err.Error())
		return
	}
	msg := hb.Chat.AttachFile(middleware.GetState(c), req.File, req.FileType)
	c.JSON(http.StatusOK, msg)
}

// ChatHistoryClearHandler wipes the visitor's chat log and flow position.
func (hb *HandlerBundle) ChatHistoryClearHandler(c *gin.Context) {
	state := middleware.GetState(c)
	state.ChatMessages = nil
	state.ChatFlow = session.ChatFlow{}
	c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared."})
}

// FAQSearchHandler searches the canned FAQ list.
func (hb *HandlerBundle) FAQSearchHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": chat.SearchFAQs(c.Query("q"))})
}
