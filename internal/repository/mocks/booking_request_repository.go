package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockBookingRequestRepository struct {
	mock.Mock
}

func NewMockBookingRequestRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingRequestRepository {
	m := &MockBookingRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingRequestRepository) request(args mock.Arguments) (*model.BookingRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingRequest), args.Error(1)
}

func (m *MockBookingRequestRepository) requests(args mock.Arguments) ([]*model.BookingRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingRequest), args.Error(1)
}

func (m *MockBookingRequestRepository) FindByID(ctx context.Context, id int) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, id))
}

func (m *MockBookingRequestRepository) List(ctx context.Context) ([]*model.BookingRequest, error) {
	return m.requests(m.Called(ctx))
}

func (m *MockBookingRequestRepository) ListOffered(ctx context.Context) ([]*model.BookingRequest, error) {
	return m.requests(m.Called(ctx))
}

func (m *MockBookingRequestRepository) ListByArtist(ctx context.Context, artistID int) ([]*model.BookingRequest, error) {
	return m.requests(m.Called(ctx, artistID))
}

func (m *MockBookingRequestRepository) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, id, status))
}

func (m *MockBookingRequestRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRequestRepository) Create(ctx context.Context, tx pgx.Tx, req *model.BookingRequest) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, tx, req))
}

func (m *MockBookingRequestRepository) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.BookingRequest, error) {
	return m.request(m.Called(ctx, tx, id))
}

func (m *MockBookingRequestRepository) SetPriceOffered(ctx context.Context, tx pgx.Tx, id int, price int, status model.BookingStatus) error {
	args := m.Called(ctx, tx, id, price, status)
	return args.Error(0)
}
