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
	ErrRoutineNotFound      = errors.New("routine not found")
	ErrRoutineAlreadyExists = errors.New("routine already exists")
)

type RoutineRepository interface {
	Create(ctx context.Context, routine *entity.Routine) error
	GetByID(ctx context.Context, id string) (entity.Routine, error)
	GetByName(ctx context.Context, name string) (entity.Routine, error)
	Update(ctx context.Context, routine entity.Routine) error
	SetMediaURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Routine, error)
}

type routineRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewRoutineRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) RoutineRepository {
	return &routineRepository{adapter: adapter, db: db}
}

func (r *routineRepository) Create(ctx context.Context, routine *entity.Routine) error {
	_, err := r.GetByName(ctx, routine.Name)
	if err == nil {
		return ErrRoutineAlreadyExists
	} else if !errors.Is(err, ErrRoutineNotFound) {
		return fmt.Errorf("failed to check routine existence: %w", err)
	}

	if routine.ID == "" {
		routine.ID = uuid.NewString()
	}
	routine.CreatedAt = time.Now()

	return r.adapter.Create(ctx, routine, "routines")
}

func (r *routineRepository) GetByID(ctx context.Context, id string) (entity.Routine, error) {
	var routine entity.Routine
	err := r.adapter.Get(ctx, &routine, "routines", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Routine{}, ErrRoutineNotFound
		}
		return entity.Routine{}, err
	}
	return routine, nil
}

func (r *routineRepository) GetByName(ctx context.Context, name string) (entity.Routine, error) {
	var routine entity.Routine
	err := r.adapter.Get(ctx, &routine, "routines", adapter.Condition{Equal: sq.Eq{"name": name}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Routine{}, ErrRoutineNotFound
		}
		return entity.Routine{}, err
	}
	return routine, nil
}

func (r *routineRepository) Update(ctx context.Context, routine entity.Routine) error {
	if _, err := r.GetByID(ctx, routine.ID); err != nil {
		return err
	}
	return r.adapter.Update(ctx, routine, "routines", adapter.Condition{Equal: sq.Eq{"id": routine.ID}})
}

func (r *routineRepository) SetMediaURL(ctx context.Context, id, url string) error {
	query := `UPDATE routines SET media_url = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return fmt.Errorf("failed to set media url: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *routineRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.adapter.Delete(ctx, "routines", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *routineRepository) List(ctx context.Context) ([]entity.Routine, error) {
	var routines []entity.Routine
	err := r.adapter.List(ctx, &routines, "routines", adapter.Condition{Equal: sq.Eq{}}, "name ASC")
	if err != nil {
		return nil, err
	}
	return routines, nil
}
