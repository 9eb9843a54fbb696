package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"artist-booking/internal/auth"
	"artist-booking/internal/cache"
	"artist-booking/internal/model"
	"artist-booking/internal/service"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
)

type BookingHandler struct {
	service        service.BookingService
	guard          cache.RequestGuard
	idempotencyTTL time.Duration
	middleware     Middleware
}

func NewBookingHandler(
	service service.BookingService,
	guard cache.RequestGuard,
	idempotencyTTL time.Duration,
	middleware Middleware,
) *BookingHandler {
	return &BookingHandler{
		service:        service,
		guard:          guard,
		idempotencyTTL: idempotencyTTL,
		middleware:     middleware,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("requests", h.CreateRequest)
	}

	authed := r.Group("/api/v1", h.middleware.RequireAuth)
	{
		authed.GET("requests", h.GetMyRequests)
		authed.PUT("requests/:id/offer", h.SetOffer)
		authed.PUT("requests/:id/status", h.ChangeStatus)
	}

	admin := r.Group("/api/v1/admin", h.middleware.RequireAuth, h.middleware.RequireAdmin)
	{
		admin.GET("requests", h.ListRequests)
		admin.GET("offers", h.ListOffered)
		admin.GET("requests/:id", h.GetRequest)
		admin.DELETE("requests/:id", h.DeleteRequest)
		admin.GET("requests/:id/artist_status", h.GetArtistStatuses)
		admin.PUT("requests/:id/artist_status", h.SetArtistsStatus)
		admin.PUT("requests/:id/artist_status/:artist_id", h.SetArtistStatus)
	}
}

// CreateRequest is the public intake. A repeated Idempotency-Key replays the
// first response without touching the rate budget.
func (h *BookingHandler) CreateRequest(c *gin.Context) {
	key := c.GetHeader(idempotencyHeader)
	if key != "" {
		if _, err := uuid.Parse(key); err != nil {
			handleError(c, apperrors.NewValidationError(idempotencyHeader, "must be a UUID"), "CreateRequest")
			return
		}
		if h.replay(c, key) {
			return
		}
	}

	if !h.allow(c) {
		handleError(c, apperrors.ErrRateLimited, "CreateRequest")
		return
	}

	var params model.CreateBookingRequestParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	result, err := h.service.CreateRequest(c, params)
	if err != nil {
		handleError(c, err, "CreateRequest")
		return
	}

	if key != "" {
		h.remember(c, key, result)
	}
	handleSuccess(c, result, http.StatusCreated)
}

func (h *BookingHandler) replay(c *gin.Context, key string) bool {
	if h.guard == nil {
		return false
	}
	payload, ok, err := h.guard.Get(c, key)
	if err != nil {
		logger.WithComponent("handler").Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	c.Header(replayedHeader, "true")
	c.Data(http.StatusCreated, "application/json; charset=utf-8", payload)
	return true
}

// allow fails open when the guard backend errors.
func (h *BookingHandler) allow(c *gin.Context) bool {
	if h.guard == nil {
		return true
	}
	ok, err := h.guard.Allow(c, "requests:"+c.ClientIP())
	if err != nil {
		logger.WithComponent("handler").Warn("rate limit check failed", zap.Error(err))
		return true
	}
	return ok
}

func (h *BookingHandler) remember(c *gin.Context, key string, result *model.CreateRequestResult) {
	if h.guard == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.guard.Put(c, key, payload, h.idempotencyTTL); err != nil {
		logger.WithComponent("handler").Warn("failed to store idempotent response", zap.String("key", key), zap.Error(err))
	}
}

func (h *BookingHandler) GetMyRequests(c *gin.Context) {
	recs, err := h.service.GetRequestsForArtistWithRecommendation(c, principal(c).ArtistID)
	if err != nil {
		handleError(c, err, "GetMyRequests")
		return
	}
	handleSuccess(c, nonNil(recs), http.StatusOK)
}

// linkedRequest loads a request the caller may act on: admins or artists linked to it.
func (h *BookingHandler) linkedRequest(c *gin.Context, operation string) (*model.BookingRequest, auth.Principal, bool) {
	p := principal(c)
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, operation)
		return nil, p, false
	}

	req, err := h.service.GetRequest(c, id)
	if err != nil {
		handleError(c, err, operation)
		return nil, p, false
	}
	if req == nil {
		handleError(c, apperrors.ErrRequestNotFound, operation)
		return nil, p, false
	}
	if !h.middleware.Authorizer.IsAdmin(p) && !slices.Contains(req.ArtistIDs, p.ArtistID) {
		handleError(c, apperrors.ErrForbidden, operation)
		return nil, p, false
	}
	return req, p, true
}

func (h *BookingHandler) SetOffer(c *gin.Context) {
	req, p, ok := h.linkedRequest(c, "SetOffer")
	if !ok {
		return
	}

	var body model.SetOfferRequest
	if err := BindJson(c, &body); err != nil {
		return
	}

	updated, err := h.service.SetOffer(c, req.ID, p.ArtistID, body.ArtistGage, body.Comment)
	if err != nil {
		handleError(c, err, "SetOffer")
		return
	}
	if updated == nil {
		handleError(c, apperrors.ErrOfferNotFound, "SetOffer")
		return
	}

	response := gin.H{"status": updated.Status}
	if updated.PriceOffered != nil {
		response["price_offered"] = *updated.PriceOffered
	}
	handleSuccess(c, response, http.StatusOK)
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	req, _, ok := h.linkedRequest(c, "ChangeStatus")
	if !ok {
		return
	}

	var body model.ChangeStatusRequest
	if err := BindJson(c, &body); err != nil {
		return
	}

	updated, err := h.service.ChangeStatus(c, req.ID, body.Status)
	if err != nil {
		handleError(c, err, "ChangeStatus")
		return
	}
	if updated == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid"})
		return
	}
	handleSuccess(c, gin.H{"status": updated.Status}, http.StatusOK)
}

func (h *BookingHandler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c)
	if err != nil {
		handleError(c, err, "ListRequests")
		return
	}
	handleSuccess(c, nonNil(requests), http.StatusOK)
}

func (h *BookingHandler) ListOffered(c *gin.Context) {
	requests, err := h.service.ListOffered(c)
	if err != nil {
		handleError(c, err, "ListOffered")
		return
	}
	handleSuccess(c, nonNil(requests), http.StatusOK)
}

func (h *BookingHandler) GetRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "GetRequest")
		return
	}

	req, err := h.service.GetRequest(c, id)
	if err != nil {
		handleError(c, err, "GetRequest")
		return
	}
	if req == nil {
		handleError(c, apperrors.ErrRequestNotFound, "GetRequest")
		return
	}
	handleSuccess(c, req, http.StatusOK)
}

func (h *BookingHandler) DeleteRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "DeleteRequest")
		return
	}

	deleted, err := h.service.DeleteRequest(c, id)
	if err != nil {
		handleError(c, err, "DeleteRequest")
		return
	}
	if !deleted {
		handleError(c, apperrors.ErrRequestNotFound, "DeleteRequest")
		return
	}
	handleSuccess(c, gin.H{"deleted": id}, http.StatusOK)
}

func (h *BookingHandler) GetArtistStatuses(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "GetArtistStatuses")
		return
	}

	offers, err := h.service.GetArtistStatuses(c, id)
	if err != nil {
		handleError(c, err, "GetArtistStatuses")
		return
	}
	handleSuccess(c, nonNil(offers), http.StatusOK)
}

func (h *BookingHandler) SetArtistStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "SetArtistStatus")
		return
	}
	artistID, err := paramID(c, "artist_id")
	if err != nil {
		handleError(c, err, "SetArtistStatus")
		return
	}

	var body model.SetArtistStatusRequest
	if err := BindJson(c, &body); err != nil {
		return
	}

	offer, err := h.service.SetArtistStatus(c, id, artistID, body.Status)
	if err != nil {
		handleError(c, err, "SetArtistStatus")
		return
	}
	handleSuccess(c, offer, http.StatusOK)
}

// SetArtistsStatus updates the listed artists, or every artist on the request when none are given.
func (h *BookingHandler) SetArtistsStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "SetArtistsStatus")
		return
	}

	var body model.SetArtistsStatusRequest
	if err := BindJson(c, &body); err != nil {
		return
	}

	var offers []*model.Offer
	if body.ArtistIDs == nil {
		offers, err = h.service.SetAllArtistsStatus(c, id, body.Status)
	} else {
		offers, err = h.service.SetArtistsStatus(c, id, body.ArtistIDs, body.Status)
	}
	if err != nil {
		handleError(c, err, "SetArtistsStatus")
		return
	}
	handleSuccess(c, nonNil(offers), http.StatusOK)
}
