package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func NewMockBookingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingService {
	m := &MockBookingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingService) request(args mock.Arguments) (*model.BookingRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingRequest), args.Error(1)
}

func (m *MockBookingService) requests(args mock.Arguments) ([]*model.BookingRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingRequest), args.Error(1)
}

func (m *MockBookingService) offers(args mock.Arguments) ([]*model.Offer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Offer), args.Error(1)
}

func (m *MockBookingService) CreateRequest(ctx context.Context, params model.CreateBookingRequestParams) (*model.CreateRequestResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateRequestResult), args.Error(1)
}

func (m *MockBookingService) SetOffer(ctx context.Context, requestID, artistID, gage int, comment *string) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, requestID, artistID, gage, comment))
}

func (m *MockBookingService) ChangeStatus(ctx context.Context, requestID int, status string) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, requestID, status))
}

func (m *MockBookingService) GetArtistStatuses(ctx context.Context, requestID int) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, requestID))
}

func (m *MockBookingService) SetArtistStatus(ctx context.Context, requestID, artistID int, status string) (*model.Offer, error) {
	args := m.Called(ctx, requestID, artistID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockBookingService) SetArtistsStatus(ctx context.Context, requestID int, artistIDs []int, status string) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, requestID, artistIDs, status))
}

func (m *MockBookingService) SetAllArtistsStatus(ctx context.Context, requestID int, status string) ([]*model.Offer, error) {
	return m.offers(m.Called(ctx, requestID, status))
}

func (m *MockBookingService) GetRequest(ctx context.Context, id int) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, id))
}

func (m *MockBookingService) ListRequests(ctx context.Context) ([]*model.BookingRequest, error) {
	return m.requests(m.Called(ctx))
}

func (m *MockBookingService) ListOffered(ctx context.Context) ([]*model.BookingRequest, error) {
	return m.requests(m.Called(ctx))
}

func (m *MockBookingService) DeleteRequest(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingService) GetRequestsForArtistWithRecommendation(ctx context.Context, artistID int) ([]*model.RequestRecommendation, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RequestRecommendation), args.Error(1)
}

func (m *MockBookingService) WaitNotifications() {
	m.Called()
}
