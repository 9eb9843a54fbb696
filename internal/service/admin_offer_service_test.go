package service_test

import (
	"context"
	"testing"

	"artist-booking/internal/model"
	"artist-booking/internal/service"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminOfferService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := setupMocks(t)
		svc := service.NewAdminOfferService(m.adminOffers, m.requests)

		m.requests.On("FindByID", ctx, 7).Return(soloRequest(), nil).Once()
		m.adminOffers.On("Create", ctx, mock.MatchedBy(func(o *model.AdminOffer) bool {
			return o.RequestID == 7 && o.OverridePrice == 2500 && *o.AdminID == 1
		})).Return(&model.AdminOffer{ID: 3, RequestID: 7, OverridePrice: 2500}, nil).Once()

		offer, err := svc.Create(ctx, 7, intPtr(1), 2500, strPtr("loyal client"))
		require.NoError(t, err)
		assert.Equal(t, 3, offer.ID)
	})

	t.Run("Failed - request missing", func(t *testing.T) {
		m := setupMocks(t)
		svc := service.NewAdminOfferService(m.adminOffers, m.requests)

		m.requests.On("FindByID", ctx, 99).Return(nil, apperrors.ErrRequestNotFound).Once()

		_, err := svc.Create(ctx, 99, nil, 100, nil)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})

	t.Run("Failed - negative price", func(t *testing.T) {
		m := setupMocks(t)
		svc := service.NewAdminOfferService(m.adminOffers, m.requests)

		_, err := svc.Create(ctx, 7, nil, -5, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestAdminOfferService_Update(t *testing.T) {
	ctx := context.Background()
	m := setupMocks(t)
	svc := service.NewAdminOfferService(m.adminOffers, m.requests)

	m.adminOffers.On("Update", ctx, 3, map[string]interface{}{"notes": "call first"}).
		Return(&model.AdminOffer{ID: 3, Notes: strPtr("call first")}, nil).Once()

	offer, err := svc.Update(ctx, 3, nil, strPtr("call first"))
	require.NoError(t, err)
	assert.Equal(t, "call first", *offer.Notes)
}

func TestAdminOfferService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - returns deleted record", func(t *testing.T) {
		m := setupMocks(t)
		svc := service.NewAdminOfferService(m.adminOffers, m.requests)

		deleted := &model.AdminOffer{ID: 3, RequestID: 7, OverridePrice: 2500}
		m.adminOffers.On("Delete", ctx, 3).Return(deleted, nil).Once()

		got, err := svc.Delete(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, deleted, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		m := setupMocks(t)
		svc := service.NewAdminOfferService(m.adminOffers, m.requests)

		m.adminOffers.On("Delete", ctx, 3).Return(nil, apperrors.ErrAdminOfferNotFound).Once()

		got, err := svc.Delete(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
