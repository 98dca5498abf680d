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
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrTrainerAlreadyExists = errors.New("trainer already exists")
)

type TrainerRepository interface {
	Create(ctx context.Context, trainer *entity.Trainer) error
	GetByID(ctx context.Context, id string) (entity.Trainer, error)
	GetByName(ctx context.Context, name string) (entity.Trainer, error)
	Update(ctx context.Context, trainer entity.Trainer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Trainer, error)
}

type trainerRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewTrainerRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) TrainerRepository {
	return &trainerRepository{adapter: adapter, db: db}
}

func (r *trainerRepository) Create(ctx context.Context, trainer *entity.Trainer) error {
	_, err := r.GetByName(ctx, trainer.Name)
	if err == nil {
		return ErrTrainerAlreadyExists
	} else if !errors.Is(err, ErrTrainerNotFound) {
		return fmt.Errorf("failed to check trainer existence: %w", err)
	}

	if trainer.ID == "" {
		trainer.ID = uuid.NewString()
	}
	trainer.CreatedAt = time.Now()

	return r.adapter.Create(ctx, trainer, "trainers")
}

func (r *trainerRepository) GetByID(ctx context.Context, id string) (entity.Trainer, error) {
	var trainer entity.Trainer
	err := r.adapter.Get(ctx, &trainer, "trainers", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Trainer{}, ErrTrainerNotFound
		}
		return entity.Trainer{}, err
	}
	return trainer, nil
}

func (r *trainerRepository) GetByName(ctx context.Context, name string) (entity.Trainer, error) {
	var trainer entity.Trainer
	err := r.adapter.Get(ctx, &trainer, "trainers", adapter.Condition{Equal: sq.Eq{"name": name}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Trainer{}, ErrTrainerNotFound
		}
		return entity.Trainer{}, err
	}
	return trainer, nil
}

func (r *trainerRepository) Update(ctx context.Context, trainer entity.Trainer) error {
	if _, err := r.GetByID(ctx, trainer.ID); err != nil {
		return err
	}
	return r.adapter.Update(ctx, trainer, "trainers", adapter.Condition{Equal: sq.Eq{"id": trainer.ID}})
}

func (r *trainerRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.adapter.Delete(ctx, "trainers", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

func (r *trainerRepository) List(ctx context.Context) ([]entity.Trainer, error) {
	var trainers []entity.Trainer
	err := r.adapter.List(ctx, &trainers, "trainers", adapter.Condition{Equal: sq.Eq{}}, "name ASC")
	if err != nil {
		return nil, err
	}
	return trainers, nil
}
