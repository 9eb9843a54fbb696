package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artist-booking/internal/handler"
	"artist-booking/internal/model"
	"artist-booking/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAvailabilityTestRouter(mockService *mocks.MockAvailabilityService) *gin.Engine {
	router := newTestRouter()
	handler.NewAvailabilityHandler(mockService, testMiddleware()).RegisterRoutes(router)
	return router
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := model.ParseDay(raw)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAddAvailability(t *testing.T) {
	t.Run("Single date", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		date := mustDay(t, "2026-12-24")
		mockService.On("Add", mock.Anything, 3, date).
			Return(&model.Availability{ID: 10, ArtistID: 3, Date: date}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/availability", gin.H{"date": "2026-12-24"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":10,"artist_id":3,"date":"2026-12-24"}`, w.Body.String())
	})

	t.Run("List of dates", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		first, second := mustDay(t, "2026-12-24"), mustDay(t, "2026-12-25")
		mockService.On("AddMany", mock.Anything, 3, []time.Time{first, second}).
			Return([]*model.Availability{
				{ID: 10, ArtistID: 3, Date: first},
				{ID: 11, ArtistID: 3, Date: second},
			}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/availability", `[{"date":"2026-12-24"},{"date":"2026-12-25"}]`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusCreated, w.Code)
		var body []map[string]interface{}
		decode(t, w.Body, &body)
		assert.Len(t, body, 2)
	})

	t.Run("Failed - invalid date", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/availability", gin.H{"date": "24.12.2026"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Add")
	})

	t.Run("Failed - one bad date rejects the whole list", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/availability", `[{"date":"2026-12-24"},{"date":"tomorrow"}]`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AddMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - body too large", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		body := "[" + strings.Repeat(`{"date":"2026-12-24"},`, 4000) + `{"date":"2026-12-24"}]`
		req := createJSONHTTPRequest("POST", "/api/v1/availability", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		mockService.AssertNotCalled(t, "AddMany", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReplaceAvailability(t *testing.T) {
	mockService := mocks.NewMockAvailabilityService(t)
	router := setupAvailabilityTestRouter(mockService)

	mockService.On("ReplaceForArtist", mock.Anything, 3, []time.Time{mustDay(t, "2026-12-24")}).
		Return(&model.ReplaceResult{Added: []int{12}, Removed: []int{10, 11}}, nil).Once()

	req := createJSONHTTPRequest("PUT", "/api/v1/availability", gin.H{"dates": []string{"2026-12-24"}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authed(req, token(t, 3, false)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"added":[12],"removed":[10,11]}`, w.Body.String())
}

func TestRemoveAvailability(t *testing.T) {
	owned := []*model.Availability{{ID: 10, ArtistID: 3}}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		mockService.On("List", mock.Anything, mock.Anything).Return(owned, nil).Once()
		mockService.On("Remove", mock.Anything, 10).Return(owned[0], nil).Once()

		req, _ := http.NewRequest("DELETE", "/api/v1/availability/10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - slot of another artist", func(t *testing.T) {
		mockService := mocks.NewMockAvailabilityService(t)
		router := setupAvailabilityTestRouter(mockService)

		mockService.On("List", mock.Anything, mock.Anything).Return(owned, nil).Once()

		req, _ := http.NewRequest("DELETE", "/api/v1/availability/77", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 3, false)))

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertNotCalled(t, "Remove")
	})
}

func TestFillAvailability(t *testing.T) {
	mockService := mocks.NewMockAvailabilityService(t)
	router := setupAvailabilityTestRouter(mockService)

	mockService.On("EnsureAvailableForAllOn", mock.Anything, mustDay(t, "2026-12-31"), false).
		Return(&model.FillResult{Created: 4, Skipped: 1}, nil).Once()

	req := createJSONHTTPRequest("POST", "/api/v1/admin/availability/fill", gin.H{"date": "2026-12-31", "only_approved": false})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authed(req, token(t, 1, true)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created":4,"skipped":1}`, w.Body.String())
}
