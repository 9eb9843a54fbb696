package mocks

import (
	"context"
	"time"

	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockArtistRepository struct {
	mock.Mock
}

func NewMockArtistRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArtistRepository {
	m := &MockArtistRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArtistRepository) artist(args mock.Arguments) (*model.Artist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) artists(args mock.Arguments) ([]*model.Artist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) FindByID(ctx context.Context, id int) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id))
}

func (m *MockArtistRepository) FindByEmail(ctx context.Context, email string) (*model.Artist, error) {
	return m.artist(m.Called(ctx, email))
}

func (m *MockArtistRepository) List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error) {
	return m.artists(m.Called(ctx, status))
}

func (m *MockArtistRepository) ListByDisciplinesAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error) {
	return m.artists(m.Called(ctx, disciplines, date))
}

func (m *MockArtistRepository) ListIDs(ctx context.Context, onlyApproved bool) ([]int, error) {
	args := m.Called(ctx, onlyApproved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockArtistRepository) Update(ctx context.Context, id int, values map[string]interface{}) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, values))
}

func (m *MockArtistRepository) UpdateApproval(ctx context.Context, id int, update model.ApprovalUpdate) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, update))
}

func (m *MockArtistRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtistRepository) Create(ctx context.Context, tx pgx.Tx, artist *model.Artist) (*model.Artist, error) {
	return m.artist(m.Called(ctx, tx, artist))
}

func (m *MockArtistRepository) AttachDisciplines(ctx context.Context, tx pgx.Tx, artistID int, disciplineIDs []int) error {
	args := m.Called(ctx, tx, artistID, disciplineIDs)
	return args.Error(0)
}
