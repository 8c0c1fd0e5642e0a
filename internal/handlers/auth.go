package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"billpay-service/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Données d'inscription invalides"})
		return
	}

	username := body.Username
	if username == "" {
		username = body.Name
	}

	user, err := h.auth.Register(c.Request.Context(), body.Email, body.Password, body.Name, username)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Un utilisateur avec cet email existe déjà"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Une erreur est survenue lors de l'inscription"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"user": gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	}})
}

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "Identifiants manquants"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "Une erreur est survenue lors de la connexion"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"name":     user.Name,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
