package mocks

import (
	"context"

	"artist-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDisciplineService struct {
	mock.Mock
}

func NewMockDisciplineService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDisciplineService {
	m := &MockDisciplineService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDisciplineService) GetOrCreate(ctx context.Context, name string) (*model.Discipline, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discipline), args.Error(1)
}

func (m *MockDisciplineService) List(ctx context.Context) ([]*model.Discipline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Discipline), args.Error(1)
}
