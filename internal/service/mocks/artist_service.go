package mocks

import (
	"context"
	"time"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockArtistService struct {
	mock.Mock
}

func NewMockArtistService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArtistService {
	m := &MockArtistService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArtistService) artist(args mock.Arguments) (*model.Artist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistService) artists(args mock.Arguments) ([]*model.Artist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Artist), args.Error(1)
}

func (m *MockArtistService) Create(ctx context.Context, params model.CreateArtistParams) (*model.Artist, error) {
	return m.artist(m.Called(ctx, params))
}

func (m *MockArtistService) GetByID(ctx context.Context, id int) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id))
}

func (m *MockArtistService) GetByEmail(ctx context.Context, email string) (*model.Artist, error) {
	return m.artist(m.Called(ctx, email))
}

func (m *MockArtistService) List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error) {
	return m.artists(m.Called(ctx, status))
}

func (m *MockArtistService) ListByDisciplineAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error) {
	return m.artists(m.Called(ctx, disciplines, date))
}

func (m *MockArtistService) Update(ctx context.Context, id int, params model.UpdateArtistParams) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, params))
}

func (m *MockArtistService) SetApprovalStatus(ctx context.Context, id int, status model.ApprovalStatus, reason *string, approverID *int) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, status, reason, approverID))
}

func (m *MockArtistService) Submit(ctx context.Context, id int) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id))
}

func (m *MockArtistService) Approve(ctx context.Context, id int, adminID int) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, adminID))
}

func (m *MockArtistService) Reject(ctx context.Context, id int, adminID int, reason string) (*model.Artist, error) {
	return m.artist(m.Called(ctx, id, adminID, reason))
}

func (m *MockArtistService) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtistService) Authenticate(ctx context.Context, email, password string) (*model.Artist, error) {
	return m.artist(m.Called(ctx, email, password))
}
