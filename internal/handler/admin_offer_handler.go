package handler

import (
	"net/http"

	"artist-booking/internal/model"
	"artist-booking/internal/service"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type AdminOfferHandler struct {
	service    service.AdminOfferService
	middleware Middleware
}

func NewAdminOfferHandler(service service.AdminOfferService, middleware Middleware) *AdminOfferHandler {
	return &AdminOfferHandler{
		service:    service,
		middleware: middleware,
	}
}

func (h *AdminOfferHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/api/v1/admin", h.middleware.RequireAuth, h.middleware.RequireAdmin)
	{
		admin.GET("requests/:id/admin_offers", h.ListAdminOffers)
		admin.POST("requests/:id/admin_offers", h.CreateAdminOffer)
		admin.GET("admin_offers/:id", h.GetAdminOffer)
		admin.PUT("admin_offers/:id", h.UpdateAdminOffer)
		admin.DELETE("admin_offers/:id", h.DeleteAdminOffer)
	}
}

func (h *AdminOfferHandler) ListAdminOffers(c *gin.Context) {
	requestID, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "ListAdminOffers")
		return
	}

	offers, err := h.service.ListForRequest(c, requestID)
	if err != nil {
		handleError(c, err, "ListAdminOffers")
		return
	}
	handleSuccess(c, nonNil(offers), http.StatusOK)
}

func (h *AdminOfferHandler) CreateAdminOffer(c *gin.Context) {
	requestID, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "CreateAdminOffer")
		return
	}

	var req model.CreateAdminOfferRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	adminID := principal(c).ArtistID
	offer, err := h.service.Create(c, requestID, &adminID, req.OverridePrice, req.Notes)
	if err != nil {
		handleError(c, err, "CreateAdminOffer")
		return
	}
	handleSuccess(c, offer, http.StatusCreated)
}

func (h *AdminOfferHandler) GetAdminOffer(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "GetAdminOffer")
		return
	}

	offer, err := h.service.Get(c, id)
	if err != nil {
		handleError(c, err, "GetAdminOffer")
		return
	}
	if offer == nil {
		handleError(c, apperrors.ErrAdminOfferNotFound, "GetAdminOffer")
		return
	}
	handleSuccess(c, offer, http.StatusOK)
}

func (h *AdminOfferHandler) UpdateAdminOffer(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "UpdateAdminOffer")
		return
	}

	var req model.UpdateAdminOfferRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	offer, err := h.service.Update(c, id, req.OverridePrice, req.Notes)
	if err != nil {
		handleError(c, err, "UpdateAdminOffer")
		return
	}
	handleSuccess(c, offer, http.StatusOK)
}

func (h *AdminOfferHandler) DeleteAdminOffer(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "DeleteAdminOffer")
		return
	}

	offer, err := h.service.Delete(c, id)
	if err != nil {
		handleError(c, err, "DeleteAdminOffer")
		return
	}
	if offer == nil {
		handleError(c, apperrors.ErrAdminOfferNotFound, "DeleteAdminOffer")
		return
	}
	handleSuccess(c, offer, http.StatusOK)
}
