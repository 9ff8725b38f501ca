package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookline/models"
	"bookline/services/session"
)

// ChatHandler processes one conversation turn and returns the assistant's
// reply together with the current stage and draft.
func (hb *HandlerBundle) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	turn, err := hb.Sessions.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatReply{
		SessionID:            turn.SessionID,
		Message:              turn.Step.Reply,
		Stage:                turn.State.Stage,
		Draft:                turn.State.Draft,
		SuggestedSlots:       turn.Step.SuggestedSlots,
		Suggestions:          turn.Step.Suggestions,
		RequiresConfirmation: turn.Step.RequiresConfirmation,
	})
}

// ChatHistoryHandler returns the full transcript for a session.
func (hb *HandlerBundle) ChatHistoryHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	history, err := hb.Sessions.History(c.Request.Context(), sessionID)
	if err == session.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "history": history})
}

// ResetSessionHandler deletes a session so the next message starts over.
func (hb *HandlerBundle) ResetSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := hb.Sessions.Reset(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "status": "reset"})
}
