package service

import (
	"context"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
)

var (
	ErrTrainerNotFound      = repository.ErrTrainerNotFound
	ErrTrainerAlreadyExists = repository.ErrTrainerAlreadyExists
)

type TrainerService struct {
	repo repository.TrainerRepository
}

func NewTrainerService(repo repository.TrainerRepository) *TrainerService {
	return &TrainerService{repo: repo}
}

func (s *TrainerService) Create(ctx context.Context, req entity.TrainerRequest) (entity.Trainer, error) {
	trainer := entity.Trainer{
		Name:            req.Name,
		Specialty:       req.Specialty,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
	}
	if err := s.repo.Create(ctx, &trainer); err != nil {
		return entity.Trainer{}, err
	}
	return trainer, nil
}

func (s *TrainerService) Get(ctx context.Context, id string) (entity.Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TrainerService) Update(ctx context.Context, id string, req entity.TrainerRequest) (entity.Trainer, error) {
	trainer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Trainer{}, err
	}

	trainer.Name = req.Name
	trainer.Specialty = req.Specialty
	trainer.Bio = req.Bio
	trainer.ExperienceYears = req.ExperienceYears

	if err := s.repo.Update(ctx, trainer); err != nil {
		return entity.Trainer{}, err
	}
	return trainer, nil
}

func (s *TrainerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *TrainerService) List(ctx context.Context) ([]entity.Trainer, error) {
	return s.repo.List(ctx)
}
