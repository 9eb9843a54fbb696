package handler

import (
	"errors"
	"net/http"
	"strconv"

	"artist-booking/internal/auth"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware bundles the auth chain handlers attach to protected routes.
type Middleware struct {
	RequireAuth  gin.HandlerFunc
	RequireAdmin gin.HandlerFunc
	Authorizer   auth.Authorizer
}

func NewMiddleware(verifier *auth.TokenVerifier, authorizer auth.Authorizer) Middleware {
	return Middleware{
		RequireAuth:  auth.RequireAuth(verifier),
		RequireAdmin: auth.RequireAdmin(authorizer),
		Authorizer:   authorizer,
	}
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func principal(c *gin.Context) auth.Principal {
	p, _ := auth.PrincipalFrom(c)
	return p
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Info("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Info("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrArtistNotFound),
		errors.Is(err, apperrors.ErrRequestNotFound),
		errors.Is(err, apperrors.ErrOfferNotFound),
		errors.Is(err, apperrors.ErrAdminOfferNotFound),
		errors.Is(err, apperrors.ErrAvailabilityNotFound),
		errors.Is(err, apperrors.ErrDisciplineNotFound):
		log.Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn("Email taken")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Email already registered",
		})
	case errors.Is(err, apperrors.ErrRateLimited):
		log.Warn("Rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many requests",
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Info("Login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}

// nonNil keeps empty lists rendering as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
