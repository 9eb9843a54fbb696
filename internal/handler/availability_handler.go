package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/service"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

// maxAvailabilityBody caps a POST of availability dates; a year of days fits easily.
const maxAvailabilityBody = 64 << 10

type AvailabilityHandler struct {
	service    service.AvailabilityService
	middleware Middleware
}

func NewAvailabilityHandler(service service.AvailabilityService, middleware Middleware) *AvailabilityHandler {
	return &AvailabilityHandler{
		service:    service,
		middleware: middleware,
	}
}

type replaceAvailabilityRequest struct {
	Dates []string `json:"dates"`
}

type fillAvailabilityRequest struct {
	Date         string `json:"date" binding:"required"`
	OnlyApproved *bool  `json:"only_approved"`
}

type rollingWindowRequest struct {
	Days int `json:"days"`
}

func (h *AvailabilityHandler) RegisterRoutes(r *gin.Engine) {
	authed := r.Group("/api/v1", h.middleware.RequireAuth)
	{
		authed.GET("availability", h.ListAvailability)
		authed.POST("availability", h.AddAvailability)
		authed.PUT("availability", h.ReplaceAvailability)
		authed.DELETE("availability/:id", h.RemoveAvailability)
	}

	admin := r.Group("/api/v1/admin", h.middleware.RequireAuth, h.middleware.RequireAdmin)
	{
		admin.POST("availability/fill", h.FillAvailability)
		admin.POST("availability/window", h.EnsureRollingWindow)
	}
}

func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	artistID := principal(c).ArtistID
	slots, err := h.service.List(c, &artistID)
	if err != nil {
		handleError(c, err, "ListAvailability")
		return
	}
	handleSuccess(c, availabilityResponses(slots), http.StatusOK)
}

// AddAvailability accepts {"date": "..."} or a JSON array of such objects.
// A list is stored atomically.
func (h *AvailabilityHandler) AddAvailability(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxAvailabilityBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		handleError(c, apperrors.ErrInvalidInput, "AddAvailability")
		return
	}

	dates, err := parseAvailabilityDates(raw)
	if err != nil {
		handleError(c, err, "AddAvailability")
		return
	}

	artistID := principal(c).ArtistID
	if !isJSONArray(raw) {
		slot, err := h.service.Add(c, artistID, dates[0])
		if err != nil {
			handleError(c, err, "AddAvailability")
			return
		}
		handleSuccess(c, slot.Response(), http.StatusCreated)
		return
	}

	slots, err := h.service.AddMany(c, artistID, dates)
	if err != nil {
		handleError(c, err, "AddAvailability")
		return
	}
	handleSuccess(c, availabilityResponses(slots), http.StatusCreated)
}

func (h *AvailabilityHandler) ReplaceAvailability(c *gin.Context) {
	var req replaceAvailabilityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := model.ParseDay(raw)
		if err != nil {
			handleError(c, apperrors.NewValidationError("dates", "invalid date %q", raw), "ReplaceAvailability")
			return
		}
		dates = append(dates, date)
	}

	result, err := h.service.ReplaceForArtist(c, principal(c).ArtistID, dates)
	if err != nil {
		handleError(c, err, "ReplaceAvailability")
		return
	}
	handleSuccess(c, result, http.StatusOK)
}

// RemoveAvailability only deletes slots owned by the caller.
func (h *AvailabilityHandler) RemoveAvailability(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		handleError(c, err, "RemoveAvailability")
		return
	}

	artistID := principal(c).ArtistID
	slots, err := h.service.List(c, &artistID)
	if err != nil {
		handleError(c, err, "RemoveAvailability")
		return
	}
	owned := false
	for _, slot := range slots {
		if slot.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		handleError(c, apperrors.ErrAvailabilityNotFound, "RemoveAvailability")
		return
	}

	slot, err := h.service.Remove(c, id)
	if err != nil {
		handleError(c, err, "RemoveAvailability")
		return
	}
	if slot == nil {
		handleError(c, apperrors.ErrAvailabilityNotFound, "RemoveAvailability")
		return
	}
	handleSuccess(c, slot.Response(), http.StatusOK)
}

func (h *AvailabilityHandler) FillAvailability(c *gin.Context) {
	var req fillAvailabilityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	date, err := model.ParseDay(req.Date)
	if err != nil {
		handleError(c, apperrors.NewValidationError("date", "invalid date %q", req.Date), "FillAvailability")
		return
	}
	onlyApproved := true
	if req.OnlyApproved != nil {
		onlyApproved = *req.OnlyApproved
	}

	result, err := h.service.EnsureAvailableForAllOn(c, date, onlyApproved)
	if err != nil {
		handleError(c, err, "FillAvailability")
		return
	}
	handleSuccess(c, result, http.StatusOK)
}

func (h *AvailabilityHandler) EnsureRollingWindow(c *gin.Context) {
	var req rollingWindowRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.EnsureRollingWindowForAll(c, req.Days)
	if err != nil {
		handleError(c, err, "EnsureRollingWindow")
		return
	}
	handleSuccess(c, result, http.StatusOK)
}

type availabilityDate struct {
	Date string `json:"date"`
}

func parseAvailabilityDates(raw []byte) ([]time.Time, error) {
	var entries []availabilityDate
	if isJSONArray(raw) {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, apperrors.ErrInvalidInput
		}
	} else {
		var single availabilityDate
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, apperrors.ErrInvalidInput
		}
		entries = []availabilityDate{single}
	}

	if len(entries) == 0 {
		return nil, apperrors.NewValidationError("date", "at least one date is required")
	}

	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		date, err := model.ParseDay(e.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date", "invalid date %q", e.Date)
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func availabilityResponses(slots []*model.Availability) []model.AvailabilityResponse {
	out := make([]model.AvailabilityResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Response())
	}
	return out
}
