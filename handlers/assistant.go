package handlers

import (
	"net/http"
	"time"

	"fieldassist/models"
	"fieldassist/services/messenger"
	"fieldassist/services/orchestrator"
	"fieldassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational endpoints.
type AssistantHandler struct {
	Orc       *orchestrator.Orchestrator
	Messenger messenger.Messenger
	logger    *zap.Logger
}

func NewAssistantHandler(orc *orchestrator.Orchestrator, msgr messenger.Messenger, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{Orc: orc, Messenger: msgr, logger: logger}
}

// ChatRequest is the web chat payload.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse carries the narrative plus the rendered envelope for widgets.
type ChatResponse struct {
	SessionID    string                   `json:"session_id"`
	Text         string                   `json:"text"`
	Envelope     *models.ResponseEnvelope `json:"envelope,omitempty"`
	SessionToken string                   `json:"session_token,omitempty"`
}

// ChatHandler runs one web-chat turn.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	newSession := req.SessionID == ""
	if newSession {
		req.SessionID = uuid.New().String()
	}

	out, err := h.Orc.HandleMessage(c.Request.Context(), req.SessionID, models.ChannelWeb, req.Message)
	if err != nil {
		h.logger.Error("chat turn failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Chat failed", "please try again")
		return
	}

	resp := ChatResponse{
		SessionID: req.SessionID,
		Text:      out.Text,
		Envelope:  out.Envelope,
	}
	if newSession {
		token, err := utils.GenerateSessionToken(req.SessionID, 24*time.Hour)
		if err != nil {
			h.logger.Warn("failed to mint session token", zap.Error(err))
		} else {
			resp.SessionToken = token
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SessionHistoryHandler returns the user-visible transcript for the session
// the bearer token was minted for. Tool messages stay internal.
func (h *AssistantHandler) SessionHistoryHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")
	if sessionID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Missing session", "")
		return
	}

	session, err := h.Orc.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load session", err.Error())
		return
	}
	if session == nil {
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
		return
	}

	visible := make([]models.ChatMessage, 0, len(session.MessageLog))
	for _, msg := range session.MessageLog {
		if msg.Role == models.RoleTool {
			continue
		}
		visible = append(visible, msg)
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"channel":    session.Channel,
		"messages":   visible,
	})
}

// SMSWebhookHandler receives an inbound SMS (carrier webhook) and replies in
// plain prose through the send primitive.
func (h *AssistantHandler) SMSWebhookHandler(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	if from == "" || body == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid SMS webhook", "From and Body are required")
		return
	}

	// Sessions for SMS are keyed by the sender's number.
	out, err := h.Orc.HandleMessage(c.Request.Context(), "sms:"+from, models.ChannelSMS, body)
	if err != nil {
		h.logger.Error("sms turn failed", zap.String("from", from), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	if _, err := h.Messenger.Send(c.Request.Context(), models.ChannelSMS, from, out.Text); err != nil {
		h.logger.Error("sms send failed", zap.String("from", from), zap.Error(err))
		c.Status(http.StatusBadGateway)
		return
	}
	c.Status(http.StatusNoContent)
}
