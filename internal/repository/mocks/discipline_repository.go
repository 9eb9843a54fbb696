package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockDisciplineRepository struct {
	mock.Mock
}

func NewMockDisciplineRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDisciplineRepository {
	m := &MockDisciplineRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDisciplineRepository) List(ctx context.Context) ([]*model.Discipline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Discipline), args.Error(1)
}

func (m *MockDisciplineRepository) FindByName(ctx context.Context, name string) (*model.Discipline, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discipline), args.Error(1)
}

func (m *MockDisciplineRepository) Create(ctx context.Context, name string) (*model.Discipline, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discipline), args.Error(1)
}

func (m *MockDisciplineRepository) EnsureTx(ctx context.Context, tx pgx.Tx, name string) (*model.Discipline, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discipline), args.Error(1)
}
