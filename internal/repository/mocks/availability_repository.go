package mocks

import (
	"context"
	"time"

	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockAvailabilityRepository struct {
	mock.Mock
}

func NewMockAvailabilityRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAvailabilityRepository {
	m := &MockAvailabilityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAvailabilityRepository) slot(args mock.Arguments) (*model.Availability, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) slots(args mock.Arguments) ([]*model.Availability, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) FindByArtistAndDate(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	return m.slot(m.Called(ctx, artistID, date))
}

func (m *MockAvailabilityRepository) Insert(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	return m.slot(m.Called(ctx, artistID, date))
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, id int) (*model.Availability, error) {
	return m.slot(m.Called(ctx, id))
}

func (m *MockAvailabilityRepository) List(ctx context.Context, artistID *int) ([]*model.Availability, error) {
	return m.slots(m.Called(ctx, artistID))
}

func (m *MockAvailabilityRepository) InsertForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (int, int, error) {
	args := m.Called(ctx, date, onlyApproved)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockAvailabilityRepository) ListForArtistTx(ctx context.Context, tx pgx.Tx, artistID int) ([]*model.Availability, error) {
	return m.slots(m.Called(ctx, tx, artistID))
}

func (m *MockAvailabilityRepository) InsertDatesTx(ctx context.Context, tx pgx.Tx, artistID int, dates []time.Time) ([]int, error) {
	args := m.Called(ctx, tx, artistID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockAvailabilityRepository) DeleteByIDsTx(ctx context.Context, tx pgx.Tx, artistID int, ids []int) error {
	args := m.Called(ctx, tx, artistID, ids)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) InsertRangeTx(ctx context.Context, tx pgx.Tx, artistID int, start, end time.Time) (int, error) {
	args := m.Called(ctx, tx, artistID, start, end)
	return args.Int(0), args.Error(1)
}
