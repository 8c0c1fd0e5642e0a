package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/models"
	"billpay-service/internal/repositories"
)

type InboxHandler struct {
	inbox repositories.InboxRepository
}

func NewInboxHandler(inbox repositories.InboxRepository) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

type createInboxMessageBody struct {
	Content string `json:"content" binding:"required,min=1"`
	Type    string `json:"type" binding:"required"`
}

func (h *InboxHandler) Create(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	var body createInboxMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Données de message invalides"})
		return
	}
	if !models.ValidInboxMessageType(body.Type) {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Type de message invalide"})
		return
	}

	message, err := h.inbox.Create(c.Request.Context(), userID, body.Content, body.Type)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du message"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"message": message})
}

func (h *InboxHandler) List(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	messages, err := h.inbox.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des messages"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"messages": messages})
}
