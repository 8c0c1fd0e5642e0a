package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/metrics"
	"billpay-service/internal/repositories"
)

type ChatHandler struct {
	chat repositories.ChatRepository
}

func NewChatHandler(chat repositories.ChatRepository) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ListConversation returns the full history between the caller and the
// friend, oldest first. Clients poll this endpoint; there is no delta
// or push variant.
func (h *ChatHandler) ListConversation(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	messages, err := h.chat.ListConversation(c.Request.Context(), userID, friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des messages"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"messages": messages})
}

type sendMessageBody struct {
	Content string `json:"content" binding:"required,min=1"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil {
		metrics.IncChatMessage(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var body sendMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncChatMessage(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Le message ne peut pas être vide"})
		return
	}

	message, err := h.chat.SendMessage(c.Request.Context(), userID, friendID, body.Content)
	if err != nil {
		metrics.IncChatMessage(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi du message"})
		return
	}

	metrics.IncChatMessage(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"message": message})
}
