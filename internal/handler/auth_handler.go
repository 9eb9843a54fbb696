package handler

import (
	"net/http"
	"time"

	"artist-booking/internal/auth"
	"artist-booking/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service    service.ArtistService
	issuer     *auth.TokenIssuer
	middleware Middleware
}

func NewAuthHandler(service service.ArtistService, issuer *auth.TokenIssuer, middleware Middleware) *AuthHandler {
	return &AuthHandler{
		service:    service,
		issuer:     issuer,
		middleware: middleware,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        loginUser `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("login", h.Login)
	}

	authed := r.Group("/api/v1", h.middleware.RequireAuth)
	{
		authed.POST("logout", h.Logout)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	artist, err := h.service.Authenticate(c, req.Email, req.Password)
	if err != nil {
		handleError(c, err, "Login")
		return
	}

	token, expiresAt, err := h.issuer.Issue(auth.Principal{ArtistID: artist.ID, IsAdmin: artist.IsAdmin})
	if err != nil {
		handleError(c, err, "Login")
		return
	}

	handleSuccess(c, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC(),
		User:        loginUser{ID: artist.ID, Email: artist.Email},
	}, http.StatusOK)
}

// Logout is stateless; the client drops its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	handleSuccess(c, gin.H{"message": "Logout successful"}, http.StatusOK)
}
