package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAdminOfferService struct {
	mock.Mock
}

func NewMockAdminOfferService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminOfferService {
	m := &MockAdminOfferService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAdminOfferService) offer(args mock.Arguments) (*model.AdminOffer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminOffer), args.Error(1)
}

func (m *MockAdminOfferService) ListForRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AdminOffer), args.Error(1)
}

func (m *MockAdminOfferService) Get(ctx context.Context, id int) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id))
}

func (m *MockAdminOfferService) Create(ctx context.Context, requestID int, adminID *int, price int, notes *string) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, requestID, adminID, price, notes))
}

func (m *MockAdminOfferService) Update(ctx context.Context, id int, price *int, notes *string) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id, price, notes))
}

func (m *MockAdminOfferService) Delete(ctx context.Context, id int) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id))
}
