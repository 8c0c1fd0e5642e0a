package handlers

import (
	"context"
	"database/sql"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/metrics"
	"billpay-service/internal/repositories"
	"billpay-service/internal/telemetry"
)

type FriendHandler struct {
	friends repositories.FriendRepository
	users   repositories.UserRepository
	audit   *telemetry.AuditEmitter
}

func NewFriendHandler(friends repositories.FriendRepository, users repositories.UserRepository, audit *telemetry.AuditEmitter) *FriendHandler {
	return &FriendHandler{friends: friends, users: users, audit: audit}
}

type sendRequestBody struct {
	ReceiverID int64 `json:"receiverId" binding:"required"`
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.emitAudit(c.Request.Context(), "ERROR", "invalid request payload", requestID, userID)
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	if userID == nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "Non autorisé"})
		return
	}
	senderID := *userID

	ctx := c.Request.Context()
	if _, err := h.users.GetProfile(ctx, body.ReceiverID); err != nil {
		h.emitAudit(ctx, "ERROR", "target user not found", requestID, userID)
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	req, err := h.friends.CreateRequest(ctx, senderID, body.ReceiverID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateRequest) {
			h.emitAudit(ctx, "ERROR", "friend request already exists", requestID, userID)
			metrics.IncFriendRequest(metrics.StatusFailed)
			c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Une demande d'ami existe déjà"})
			return
		}
		h.emitAudit(ctx, "ERROR", "internal error", requestID, userID)
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la demande d'ami"})
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request sent to '"+strconv.FormatInt(body.ReceiverID, 10)+"'", requestID, userID)
	metrics.IncFriendRequest(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"friendRequest": req})
}

func (h *FriendHandler) ListPending(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	requests, err := h.friends.GetPendingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des demandes"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"requests": requests})
}

type respondBody struct {
	RequestID int64 `json:"requestId" binding:"required"`
	Accept    *bool `json:"accept" binding:"required"`
}

func (h *FriendHandler) Respond(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)

	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncFriendAccept(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "Non autorisé"})
		return
	}

	action := h.friends.AcceptRequest
	inc := metrics.IncFriendAccept
	verb := "accepted"
	if !*body.Accept {
		action = h.friends.RejectRequest
		inc = metrics.IncFriendReject
		verb = "rejected"
	}

	ctx := c.Request.Context()
	if err := action(ctx, body.RequestID, *userID); err != nil {
		// A request addressed to someone else is reported as missing,
		// not forbidden, so callers cannot probe for its existence.
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repositories.ErrRequestForbidden) {
			h.emitAudit(ctx, "ERROR", "friend request not found", requestID, userID)
			inc(metrics.StatusFailed)
			c.JSON(nethttp.StatusNotFound, gin.H{"error": "Demande d'ami non trouvée"})
			return
		}
		h.emitAudit(ctx, "ERROR", "internal error", requestID, userID)
		inc(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la réponse à la demande"})
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request "+verb, requestID, userID)
	inc(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"success": true})
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	friends, err := h.friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des amis"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"friends": friends})
}

func (h *FriendHandler) emitAudit(ctx context.Context, level, text, requestID string, userID *int64) {
	if h.audit == nil {
		return
	}
	h.audit.EmitAudit(ctx, level, text, requestID, userID)
}
