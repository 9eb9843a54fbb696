package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockOfferRepository struct {
	mock.Mock
}

func NewMockOfferRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOfferRepository {
	m := &MockOfferRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOfferRepository) offers(args mock.Arguments) ([]*model.Offer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByRequest(ctx context.Context, requestID int) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, requestID))
}

func (m *MockOfferRepository) UpdateStatus(ctx context.Context, requestID int, artistIDs []int, status model.BookingStatus) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, requestID, artistIDs, status))
}

func (m *MockOfferRepository) CreateMany(ctx context.Context, tx pgx.Tx, requestID int, artistIDs []int) error {
	args := m.Called(ctx, tx, requestID, artistIDs)
	return args.Error(0)
}

func (m *MockOfferRepository) SubmitGage(ctx context.Context, tx pgx.Tx, requestID, artistID, gage int, comment *string) (*model.Offer, error) {
	args := m.Called(ctx, tx, requestID, artistID, gage, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByRequestTx(ctx context.Context, tx pgx.Tx, requestID int) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, tx, requestID))
}
