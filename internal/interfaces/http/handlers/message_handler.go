package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// MessageHandler handles internal messaging endpoints
type MessageHandler struct {
	messageUsecase *usecases.MessageUsecase
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageUsecase *usecases.MessageUsecase) *MessageHandler {
	return &MessageHandler{messageUsecase: messageUsecase}
}

// Send delivers a message to another user
// POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	msg, err := h.messageUsecase.Send(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// Inbox lists received messages
// GET /api/v1/messages/inbox
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	msgs, err := h.messageUsecase.Inbox(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

// Sent lists sent messages
// GET /api/v1/messages/sent
func (h *MessageHandler) Sent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	msgs, err := h.messageUsecase.Sent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

// Conversation lists the two-way thread with another user
// GET /api/v1/messages/conversation/:userId
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	otherID, err := parseIDParam(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	msgs, err := h.messageUsecase.Conversation(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

// MarkRead flags a received message as read
// PATCH /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.messageUsecase.MarkRead(c.Request.Context(), userID, messageID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "marked as read"})
}
