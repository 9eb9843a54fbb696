package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAdminOfferRepository struct {
	mock.Mock
}

func NewMockAdminOfferRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminOfferRepository {
	m := &MockAdminOfferRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAdminOfferRepository) offer(args mock.Arguments) (*model.AdminOffer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminOffer), args.Error(1)
}

func (m *MockAdminOfferRepository) ListByRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AdminOffer), args.Error(1)
}

func (m *MockAdminOfferRepository) FindByID(ctx context.Context, id int) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id))
}

func (m *MockAdminOfferRepository) Create(ctx context.Context, offer *model.AdminOffer) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, offer))
}

func (m *MockAdminOfferRepository) Update(ctx context.Context, id int, values map[string]interface{}) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id, values))
}

func (m *MockAdminOfferRepository) Delete(ctx context.Context, id int) (*model.AdminOffer, error) {
	return m.offer(m.Called(ctx, id))
}
