package service

import (
	"context"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
)

var (
	ErrClassNotFound      = repository.ErrClassNotFound
	ErrClassAlreadyExists = repository.ErrClassAlreadyExists
)

type ClassService struct {
	repo     repository.ClassRepository
	trainers repository.TrainerRepository
}

func NewClassService(repo repository.ClassRepository, trainers repository.TrainerRepository) *ClassService {
	return &ClassService{repo: repo, trainers: trainers}
}

// Create registers a class after checking the trainer exists.
func (s *ClassService) Create(ctx context.Context, req entity.GymClassRequest) (entity.GymClass, error) {
	if _, err := s.trainers.GetByID(ctx, req.TrainerID); err != nil {
		return entity.GymClass{}, err
	}

	class := entity.GymClass{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		TrainerID:   req.TrainerID,
		StartsAt:    req.StartsAt,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, &class); err != nil {
		return entity.GymClass{}, err
	}
	return class, nil
}

func (s *ClassService) Get(ctx context.Context, id string) (entity.GymClass, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClassService) Update(ctx context.Context, id string, req entity.GymClassRequest) (entity.GymClass, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.GymClass{}, err
	}
	if req.TrainerID != "" && req.TrainerID != class.TrainerID {
		if _, err := s.trainers.GetByID(ctx, req.TrainerID); err != nil {
			return entity.GymClass{}, err
		}
		class.TrainerID = req.TrainerID
	}

	class.Name = req.Name
	class.Description = req.Description
	class.Capacity = req.Capacity
	class.StartsAt = req.StartsAt
	if req.ImageURL != nil {
		class.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(ctx, class); err != nil {
		return entity.GymClass{}, err
	}
	return class, nil
}

func (s *ClassService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns one page of the class schedule.
func (s *ClassService) List(ctx context.Context, req pagination.Request) (pagination.Result[entity.GymClass], error) {
	if err := req.Validate(); err != nil {
		return pagination.Result[entity.GymClass]{}, err
	}

	classes, total, err := s.repo.List(ctx, req)
	if err != nil {
		return pagination.Result[entity.GymClass]{}, err
	}

	return pagination.NewResult(classes, total, req), nil
}
