package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"artist-booking/internal/handler"
	"artist-booking/internal/model"
	"artist-booking/internal/service/mocks"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminOfferTestRouter(mockService *mocks.MockAdminOfferService) *gin.Engine {
	router := newTestRouter()
	handler.NewAdminOfferHandler(mockService, testMiddleware()).RegisterRoutes(router)
	return router
}

func TestCreateAdminOffer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockAdminOfferService(t)
		router := setupAdminOfferTestRouter(mockService)

		mockService.On("Create", mock.Anything, 5, intPtr(1), 2500, (*string)(nil)).
			Return(&model.AdminOffer{ID: 1, RequestID: 5, OverridePrice: 2500}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/admin/requests/5/admin_offers", gin.H{"override_price": 2500})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 1, true)))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - request missing", func(t *testing.T) {
		mockService := mocks.NewMockAdminOfferService(t)
		router := setupAdminOfferTestRouter(mockService)

		mockService.On("Create", mock.Anything, 5, mock.Anything, 2500, mock.Anything).
			Return(nil, apperrors.ErrRequestNotFound).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/admin/requests/5/admin_offers", gin.H{"override_price": 2500})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed(req, token(t, 1, true)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetAdminOffer(t *testing.T) {
	mockService := mocks.NewMockAdminOfferService(t)
	router := setupAdminOfferTestRouter(mockService)

	mockService.On("Get", mock.Anything, 2).Return(nil, nil).Once()

	req, _ := http.NewRequest("GET", "/api/v1/admin/admin_offers/2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authed(req, token(t, 1, true)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAdminOffers(t *testing.T) {
	mockService := mocks.NewMockAdminOfferService(t)
	router := setupAdminOfferTestRouter(mockService)

	mockService.On("ListForRequest", mock.Anything, 5).Return(nil, nil).Once()

	req, _ := http.NewRequest("GET", "/api/v1/admin/requests/5/admin_offers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authed(req, token(t, 1, true)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
