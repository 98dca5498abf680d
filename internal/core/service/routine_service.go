package service

import (
	"context"
	"io"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/media"
)

var (
	ErrRoutineNotFound      = repository.ErrRoutineNotFound
	ErrRoutineAlreadyExists = repository.ErrRoutineAlreadyExists
)

type RoutineService struct {
	repo  repository.RoutineRepository
	media media.Store
}

func NewRoutineService(repo repository.RoutineRepository, media media.Store) *RoutineService {
	return &RoutineService{repo: repo, media: media}
}

func (s *RoutineService) Create(ctx context.Context, req entity.RoutineRequest) (entity.Routine, error) {
	routine := entity.Routine{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	if err := s.repo.Create(ctx, &routine); err != nil {
		return entity.Routine{}, err
	}
	return routine, nil
}

func (s *RoutineService) Get(ctx context.Context, id string) (entity.Routine, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoutineService) Update(ctx context.Context, id string, req entity.RoutineRequest) (entity.Routine, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Routine{}, err
	}

	routine.Name = req.Name
	routine.Description = req.Description
	routine.Difficulty = req.Difficulty

	if err := s.repo.Update(ctx, routine); err != nil {
		return entity.Routine{}, err
	}
	return routine, nil
}

func (s *RoutineService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RoutineService) List(ctx context.Context) ([]entity.Routine, error) {
	return s.repo.List(ctx)
}

// AttachMedia uploads a demo video or image for the routine and stores the
// resulting URL on the record.
func (s *RoutineService) AttachMedia(ctx context.Context, id, contentType string, body io.Reader) (entity.Routine, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Routine{}, err
	}

	url, err := s.media.Upload(ctx, media.StorageKey("routines"), contentType, body)
	if err != nil {
		return entity.Routine{}, err
	}

	if err := s.repo.SetMediaURL(ctx, routine.ID, url); err != nil {
		return entity.Routine{}, err
	}

	routine.MediaURL = &url
	return routine, nil
}
