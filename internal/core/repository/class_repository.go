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
	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
)

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassAlreadyExists = errors.New("class already exists")
)

var classSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"capacity":   "capacity",
	"starts_at":  "starts_at",
	"created_at": "created_at",
}

type ClassRepository interface {
	Create(ctx context.Context, class *entity.GymClass) error
	GetByID(ctx context.Context, id string) (entity.GymClass, error)
	GetByName(ctx context.Context, name string) (entity.GymClass, error)
	Update(ctx context.Context, class entity.GymClass) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req pagination.Request) ([]entity.GymClass, int64, error)
}

type classRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewClassRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) ClassRepository {
	return &classRepository{adapter: adapter, db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.GymClass) error {
	_, err := r.GetByName(ctx, class.Name)
	if err == nil {
		return ErrClassAlreadyExists
	} else if !errors.Is(err, ErrClassNotFound) {
		return fmt.Errorf("failed to check class existence: %w", err)
	}

	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	class.CreatedAt = time.Now()

	return r.adapter.Create(ctx, class, "classes")
}

func (r *classRepository) GetByID(ctx context.Context, id string) (entity.GymClass, error) {
	var class entity.GymClass
	err := r.adapter.Get(ctx, &class, "classes", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.GymClass{}, ErrClassNotFound
		}
		return entity.GymClass{}, err
	}
	return class, nil
}

func (r *classRepository) GetByName(ctx context.Context, name string) (entity.GymClass, error) {
	var class entity.GymClass
	err := r.adapter.Get(ctx, &class, "classes", adapter.Condition{Equal: sq.Eq{"name": name}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.GymClass{}, ErrClassNotFound
		}
		return entity.GymClass{}, err
	}
	return class, nil
}

func (r *classRepository) Update(ctx context.Context, class entity.GymClass) error {
	if _, err := r.GetByID(ctx, class.ID); err != nil {
		return err
	}
	return r.adapter.Update(ctx, class, "classes", adapter.Condition{Equal: sq.Eq{"id": class.ID}})
}

func (r *classRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.adapter.Delete(ctx, "classes", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *classRepository) List(ctx context.Context, req pagination.Request) ([]entity.GymClass, int64, error) {
	col, ok := classSortColumns[req.SortBy]
	if !ok {
		col = "starts_at"
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("*").
		From("classes").
		OrderBy(fmt.Sprintf("%s %s", col, req.Order), "id ASC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	var classes []entity.GymClass
	start := time.Now()
	err = r.db.SelectContext(ctx, &classes, query, args...)
	metrics.ObserveDBRequest("select:classes", time.Since(start))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}

	var total int64
	start = time.Now()
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM classes`)
	metrics.ObserveDBRequest("count:classes", time.Since(start))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count classes: %w", err)
	}

	return classes, total, nil
}
