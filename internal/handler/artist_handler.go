package handler

import (
	"net/http"

	"artist-booking/internal/model"
	"artist-booking/internal/service"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type ArtistHandler struct {
	service    service.ArtistService
	middleware Middleware
}

func NewArtistHandler(service service.ArtistService, middleware Middleware) *ArtistHandler {
	return &ArtistHandler{
		service:    service,
		middleware: middleware,
	}
}

type rejectArtistRequest struct {
	Reason string `json:"reason"`
}

type listArtistsQuery struct {
	Status string `form:"status"`
}

func (h *ArtistHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("artists", h.CreateArtist)
		router.GET("artists", h.ListApprovedArtists)
		router.GET("artists/:id", h.GetArtist)
	}

	authed := r.Group("/api/v1", h.middleware.RequireAuth)
	{
		authed.GET("me", h.GetMe)
		authed.PUT("me", h.UpdateMe)
		authed.POST("me/submit", h.SubmitMe)
		authed.DELETE("artists/:id", h.DeleteArtist)
	}

	admin := r.Group("/api/v1/admin", h.middleware.RequireAuth, h.middleware.RequireAdmin)
	{
		admin.GET("artists", h.ListArtists)
		admin.POST("artists/:id/approve", h.ApproveArtist)
		admin.POST("artists/:id/reject", h.RejectArtist)
	}
}

func (h *ArtistHandler) CreateArtist(c *gin.Context) {
	var params model.CreateArtistParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	artist, err := h.service.Create(c, params)
	if err != nil {
		handleError(c, err, "CreateArtist")
		return
	}
	handleSuccess(c, artist, http.StatusCreated)
}

func (h *ArtistHandler) ListApprovedArtists(c *gin.Context) {
	status := model.ApprovalApproved
	artists, err := h.service.List(c, &status)
	if err != nil {
		handleError(c, err, "ListApprovedArtists")
		return
	}
	handleSuccess(c, nonNil(artists), http.StatusOK)
}

func (h *ArtistHandler) GetArtist(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "GetArtist")
		return
	}

	artist, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetArtist")
		return
	}
	if artist == nil {
		handleError(c, apperrors.ErrArtistNotFound, "GetArtist")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}

func (h *ArtistHandler) GetMe(c *gin.Context) {
	artist, err := h.service.GetByID(c, principal(c).ArtistID)
	if err != nil {
		handleError(c, err, "GetMe")
		return
	}
	if artist == nil {
		handleError(c, apperrors.ErrArtistNotFound, "GetMe")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}

func (h *ArtistHandler) UpdateMe(c *gin.Context) {
	var params model.UpdateArtistParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	artist, err := h.service.Update(c, principal(c).ArtistID, params)
	if err != nil {
		handleError(c, err, "UpdateMe")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}

func (h *ArtistHandler) SubmitMe(c *gin.Context) {
	artist, err := h.service.Submit(c, principal(c).ArtistID)
	if err != nil {
		handleError(c, err, "SubmitMe")
		return
	}
	if artist == nil {
		handleError(c, apperrors.ErrArtistNotFound, "SubmitMe")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}

// DeleteArtist lets an artist remove their own account only.
func (h *ArtistHandler) DeleteArtist(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "DeleteArtist")
		return
	}
	if principal(c).ArtistID != id {
		handleError(c, apperrors.ErrForbidden, "DeleteArtist")
		return
	}

	deleted, err := h.service.Delete(c, id)
	if err != nil {
		handleError(c, err, "DeleteArtist")
		return
	}
	if !deleted {
		handleError(c, apperrors.ErrArtistNotFound, "DeleteArtist")
		return
	}
	handleSuccess(c, gin.H{"deleted": id}, http.StatusOK)
}

func (h *ArtistHandler) ListArtists(c *gin.Context) {
	var query listArtistsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	var status *model.ApprovalStatus
	if query.Status != "" {
		s := model.ApprovalStatus(query.Status)
		status = &s
	}

	artists, err := h.service.List(c, status)
	if err != nil {
		handleError(c, err, "ListArtists")
		return
	}
	handleSuccess(c, nonNil(artists), http.StatusOK)
}

func (h *ArtistHandler) ApproveArtist(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "ApproveArtist")
		return
	}

	artist, err := h.service.Approve(c, id, principal(c).ArtistID)
	if err != nil {
		handleError(c, err, "ApproveArtist")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}

func (h *ArtistHandler) RejectArtist(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "RejectArtist")
		return
	}

	var req rejectArtistRequest
	if c.Request.ContentLength != 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}

	artist, err := h.service.Reject(c, id, principal(c).ArtistID, req.Reason)
	if err != nil {
		handleError(c, err, "RejectArtist")
		return
	}
	handleSuccess(c, artist, http.StatusOK)
}
