package mocks

import (
	"context"
	"time"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAvailabilityService struct {
	mock.Mock
}

func NewMockAvailabilityService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAvailabilityService {
	m := &MockAvailabilityService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAvailabilityService) slot(args mock.Arguments) (*model.Availability, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Availability), args.Error(1)
}

func (m *MockAvailabilityService) Add(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	return m.slot(m.Called(ctx, artistID, date))
}

func (m *MockAvailabilityService) AddMany(ctx context.Context, artistID int, dates []time.Time) ([]*model.Availability, error) {
	args := m.Called(ctx, artistID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Availability), args.Error(1)
}

func (m *MockAvailabilityService) Remove(ctx context.Context, availabilityID int) (*model.Availability, error) {
	return m.slot(m.Called(ctx, availabilityID))
}

func (m *MockAvailabilityService) List(ctx context.Context, artistID *int) ([]*model.Availability, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Availability), args.Error(1)
}

func (m *MockAvailabilityService) ReplaceForArtist(ctx context.Context, artistID int, dates []time.Time) (*model.ReplaceResult, error) {
	args := m.Called(ctx, artistID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReplaceResult), args.Error(1)
}

func (m *MockAvailabilityService) EnsureAvailableForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (*model.FillResult, error) {
	args := m.Called(ctx, date, onlyApproved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FillResult), args.Error(1)
}

func (m *MockAvailabilityService) EnsureRangeForArtist(ctx context.Context, artistID int, start, end time.Time) (*model.RangeResult, error) {
	args := m.Called(ctx, artistID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeResult), args.Error(1)
}

func (m *MockAvailabilityService) EnsureRollingWindowForAll(ctx context.Context, days int) (*model.RangeResult, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeResult), args.Error(1)
}
