package service

import (
	"context"
	"errors"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
)

var (
	ErrReviewNotFound      = repository.ErrReviewNotFound
	ErrReviewAlreadyExists = repository.ErrReviewAlreadyExists
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type ReviewService struct {
	repo     repository.ReviewRepository
	users    repository.UserRepository
	trainers repository.TrainerRepository
}

func NewReviewService(repo repository.ReviewRepository, users repository.UserRepository, trainers repository.TrainerRepository) *ReviewService {
	return &ReviewService{repo: repo, users: users, trainers: trainers}
}

// Create posts a review. A member may review a given trainer only once.
func (s *ReviewService) Create(ctx context.Context, req entity.ReviewRequest) (entity.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return entity.Review{}, ErrInvalidRating
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return entity.Review{}, err
	}
	if _, err := s.trainers.GetByID(ctx, req.TrainerID); err != nil {
		return entity.Review{}, err
	}

	review := entity.Review{
		UserID:    req.UserID,
		TrainerID: req.TrainerID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, &review); err != nil {
		return entity.Review{}, err
	}
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (entity.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReviewService) ListByTrainer(ctx context.Context, trainerID string) ([]entity.Review, error) {
	if _, err := s.trainers.GetByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
