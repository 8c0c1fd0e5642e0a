package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/repositories"
)

type TransactionHandler struct {
	transactions repositories.TransactionRepository
}

func NewTransactionHandler(transactions repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionBody struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	CurrencyID int64   `json:"currencyId" binding:"required"`
	InvoiceID  *int64  `json:"invoiceId"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	var body createTransactionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Données de transaction invalides"})
		return
	}

	transaction, err := h.transactions.Create(c.Request.Context(), userID, body.Amount, body.CurrencyID, body.InvoiceID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la transaction"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"transaction": transaction})
}

func (h *TransactionHandler) List(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	transactions, err := h.transactions.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des transactions"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"transactions": transactions})
}
