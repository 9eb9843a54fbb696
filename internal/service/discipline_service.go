package service

import (
	"context"
	"errors"

	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"
)

type DisciplineService interface {
	// GetOrCreate normalizes name and returns the stored row, creating it once.
	GetOrCreate(ctx context.Context, name string) (*model.Discipline, error)
	List(ctx context.Context) ([]*model.Discipline, error)
}

type DisciplineServiceImpl struct {
	repository repository.DisciplineRepository
}

func NewDisciplineService(disciplineRepository repository.DisciplineRepository) DisciplineService {
	return &DisciplineServiceImpl{
		repository: disciplineRepository,
	}
}

func (s *DisciplineServiceImpl) GetOrCreate(ctx context.Context, name string) (*model.Discipline, error) {
	canonical, err := model.NormalizeDiscipline(name)
	if err != nil {
		return nil, err
	}

	discipline, err := s.repository.FindByName(ctx, canonical)
	if err == nil {
		return discipline, nil
	}
	if !errors.Is(err, apperrors.ErrDisciplineNotFound) {
		return nil, err
	}

	// Create is an upsert, so a concurrent insert of the same name still yields one row
	return s.repository.Create(ctx, canonical)
}

func (s *DisciplineServiceImpl) List(ctx context.Context) ([]*model.Discipline, error) {
	return s.repository.List(ctx)
}
