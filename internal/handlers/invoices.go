package handlers

import (
	"context"
	"database/sql"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/metrics"
	"billpay-service/internal/models"
	"billpay-service/internal/repositories"
	"billpay-service/internal/telemetry"
)

type InvoiceHandler struct {
	invoices repositories.InvoiceRepository
	audit    *telemetry.AuditEmitter
}

func NewInvoiceHandler(invoices repositories.InvoiceRepository, audit *telemetry.AuditEmitter) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, audit: audit}
}

type createInvoiceBody struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required"`
	Description *string `json:"description"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)

	var body createInvoiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncInvoiceCreate(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Données de facture invalides"})
		return
	}
	if !models.ValidInvoiceType(body.Type) {
		metrics.IncInvoiceCreate(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Type de facture invalide"})
		return
	}

	if userID == nil {
		metrics.IncInvoiceCreate(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "Non autorisé"})
		return
	}

	// Empty descriptions are stored as NULL, not "".
	description := body.Description
	if description != nil && *description == "" {
		description = nil
	}

	ctx := c.Request.Context()
	invoice, err := h.invoices.Create(ctx, *userID, body.Amount, body.Type, description)
	if err != nil {
		h.emitAudit(ctx, "ERROR", "invoice creation failed", requestID, userID)
		metrics.IncInvoiceCreate(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la facture"})
		return
	}

	h.emitAudit(ctx, "INFO", "Invoice created '"+strconv.FormatInt(invoice.ID, 10)+"'", requestID, userID)
	metrics.IncInvoiceCreate(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) ListMine(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	invoices, err := h.invoices.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des factures"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"invoices": invoices})
}

// ListByFriend returns the invoices created by the given user, so the
// caller can see the bills a specific friend has raised. The query is
// asymmetric on purpose: invoices model "bills I'm raising."
func (h *InvoiceHandler) ListByFriend(c *gin.Context) {
	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	invoices, err := h.invoices.ListByOwner(c.Request.Context(), friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des factures"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"invoices": invoices})
}

// Pay flips a pending invoice to PAID. The route keeps the original
// surface's quirk of carrying the invoice id in the friendId segment.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	h.transition(c, h.invoices.Pay, metrics.IncInvoicePayment, "paid")
}

// Reject is the symmetric twin of Pay.
func (h *InvoiceHandler) Reject(c *gin.Context) {
	h.transition(c, h.invoices.Reject, metrics.IncInvoiceRejection, "rejected")
}

func (h *InvoiceHandler) transition(c *gin.Context, action func(ctx context.Context, id int64) (*models.Invoice, error), inc func(string), verb string) {
	invoiceID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil {
		inc(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiant de facture invalide"})
		return
	}

	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)

	ctx := c.Request.Context()
	invoice, err := action(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			inc(metrics.StatusFailed)
			c.JSON(nethttp.StatusNotFound, gin.H{"error": "Facture non trouvée"})
			return
		}
		h.emitAudit(ctx, "ERROR", "invoice transition failed", requestID, userID)
		inc(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour de la facture"})
		return
	}

	h.emitAudit(ctx, "INFO", "Invoice "+strconv.FormatInt(invoiceID, 10)+" "+verb, requestID, userID)
	inc(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"invoice": invoice})
}

func (h *InvoiceHandler) Details(c *gin.Context) {
	invoiceID, err := strconv.ParseInt(c.Param("invoiceId"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiant de facture invalide"})
		return
	}

	details, err := h.invoices.GetDetails(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(nethttp.StatusNotFound, gin.H{"error": "Facture non trouvée"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"invoice": details})
}

func (h *InvoiceHandler) emitAudit(ctx context.Context, level, text, requestID string, userID *int64) {
	if h.audit == nil {
		return
	}
	h.audit.EmitAudit(ctx, level, text, requestID, userID)
}
