package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/ai"
	"github.com/personachat/server/internal/chat"
	"github.com/personachat/server/internal/httpapi/middleware"
	"github.com/personachat/server/internal/persona"
)

// Fixed client-facing error bodies. The underlying cause of a backend
// failure goes to the operator log only.
const (
	msgInvalidRequest  = "Invalid request: botId, message, and history are required."
	msgPersonaNotFound = "Bot persona not found."
	msgBackendFailure  = "An error occurred while communicating with the AI."
)

type chatTurnPart struct {
	Text string `json:"text"`
}

// chatTurn is the wire shape the frontend maintains for its history.
type chatTurn struct {
	Role  string         `json:"role"`
	Parts []chatTurnPart `json:"parts"`
}

type chatReq struct {
	BotID   int        `json:"botId"`
	Message string     `json:"message"`
	History []chatTurn `json:"history"`
}

func (t chatTurn) text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0].Text
	}
	var b strings.Builder
	for _, p := range t.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Chat relays one persona-primed message to the generation backend.
func (h *Handler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}
	// history must be present (an empty array is fine); botId and message
	// must be non-zero
	if req.BotID == 0 || req.Message == "" || req.History == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	history := make([]ai.Message, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, ai.Message{Role: t.Role, Text: t.text()})
	}

	reply, err := h.ChatSvc.Send(c.Request.Context(), req.BotID, req.Message, history)
	if err != nil {
		switch {
		case errors.Is(err, persona.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgPersonaNotFound})
		case errors.Is(err, chat.ErrHistoryTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		default:
			h.Log.Error("chat relay failed",
				zap.Int("bot_id", req.BotID),
				zap.String("request_id", c.GetString(middleware.RequestIDKey)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgBackendFailure})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
