package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/repositories"
)

type UserHandler struct {
	users   repositories.UserRepository
	friends repositories.FriendRepository
}

func NewUserHandler(users repositories.UserRepository, friends repositories.FriendRepository) *UserHandler {
	return &UserHandler{users: users, friends: friends}
}

// GetMe aggregates the caller's profile with their friends and pending
// incoming requests, the shape the dashboard polls for.
func (h *UserHandler) GetMe(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du profil"})
		return
	}

	friends, err := h.friends.ListFriends(ctx, userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des amis"})
		return
	}

	incoming, err := h.friends.GetPendingRequests(ctx, userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des demandes"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"id":                user.ID,
		"email":             user.Email,
		"username":          user.Username,
		"name":              user.Name,
		"role":              user.Role,
		"friends":           friends,
		"incoming_requests": incoming,
	})
}

// Search returns users matching q by username or display name. The
// caller never appears in the results; an empty query returns an empty
// list rather than everyone.
func (h *UserHandler) Search(c *gin.Context) {
	userIDVal, _ := c.Get("userID")
	userID := userIDVal.(int64)

	query := c.Query("q")
	if query == "" {
		c.JSON(nethttp.StatusOK, gin.H{"users": []any{}})
		return
	}

	users, err := h.users.Search(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Erreur lors de la recherche"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"users": users})
}
