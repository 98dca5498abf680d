package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/db/adapter"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (entity.Review, error)
	GetByUserAndTrainer(ctx context.Context, userID, trainerID string) (entity.Review, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]entity.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewReviewRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) ReviewRepository {
	return &reviewRepository{adapter: adapter, db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	_, err := r.GetByUserAndTrainer(ctx, review.UserID, review.TrainerID)
	if err == nil {
		return ErrReviewAlreadyExists
	} else if !errors.Is(err, ErrReviewNotFound) {
		return fmt.Errorf("failed to check review existence: %w", err)
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()

	return r.adapter.Create(ctx, review, "reviews")
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (entity.Review, error) {
	var review entity.Review
	err := r.adapter.Get(ctx, &review, "reviews", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Review{}, ErrReviewNotFound
		}
		return entity.Review{}, err
	}
	return review, nil
}

func (r *reviewRepository) GetByUserAndTrainer(ctx context.Context, userID, trainerID string) (entity.Review, error) {
	var review entity.Review
	err := r.adapter.Get(ctx, &review, "reviews",
		adapter.Condition{Equal: sq.Eq{"user_id": userID, "trainer_id": trainerID}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Review{}, ErrReviewNotFound
		}
		return entity.Review{}, err
	}
	return review, nil
}

func (r *reviewRepository) ListByTrainer(ctx context.Context, trainerID string) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.adapter.List(ctx, &reviews, "reviews",
		adapter.Condition{Equal: sq.Eq{"trainer_id": trainerID}}, "created_at DESC", "id ASC")
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.adapter.Delete(ctx, "reviews", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
