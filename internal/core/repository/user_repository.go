package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// userSortColumns whitelists the columns a listing may sort by; anything
// else falls back to created_at.
var userSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"auth":       "auth",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const userColumns = `id, name, email, password, auth, banned, ban_reason, phone, country, address, created_at, updated_at`

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByEmailWithPayments(ctx context.Context, email string) (entity.User, error)
	// UpdateTx locks the row, applies mutate to the fresh record and writes
	// the result back, all in one transaction. A mutate error rolls back and
	// no write happens.
	UpdateTx(ctx context.Context, id string, mutate func(*entity.User) error) (entity.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req pagination.Request) ([]entity.User, int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, email, password, auth, banned, ban_reason, phone, country, address, created_at, updated_at)
		VALUES (:id, :name, :email, :password, :auth, :banned, :ban_reason, :phone, :country, :address, :created_at, :updated_at)
	`

	start := time.Now()
	_, err = r.db.NamedExecContext(ctx, query, user)
	metrics.ObserveDBRequest("insert:users", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	start := time.Now()
	err := r.db.GetContext(ctx, &user, query, id)
	metrics.ObserveDBRequest("get:users", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	start := time.Now()
	err := r.db.GetContext(ctx, &user, query, email)
	metrics.ObserveDBRequest("get:users", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByEmailWithPayments(ctx context.Context, email string) (entity.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return entity.User{}, err
	}

	query := `
		SELECT id, user_id, membership_id, amount_cents, status, paid_at, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	start := time.Now()
	err = r.db.SelectContext(ctx, &user.Payments, query, user.ID)
	metrics.ObserveDBRequest("select:payments", time.Since(start))
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to load payments: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateTx(ctx context.Context, id string, mutate func(*entity.User) error) (entity.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("failed to lock user: %w", err)
	}

	if err := mutate(&user); err != nil {
		return entity.User{}, err
	}

	user.UpdatedAt = time.Now()
	update := `
		UPDATE users
		SET name = :name,
		    email = :email,
		    password = :password,
		    auth = :auth,
		    phone = :phone,
		    country = :country,
		    address = :address,
		    updated_at = :updated_at
		WHERE id = :id
	`

	start := time.Now()
	_, err = tx.NamedExecContext(ctx, update, user)
	metrics.ObserveDBRequest("update:users", time.Since(start))
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return entity.User{}, fmt.Errorf("failed to commit user update: %w", err)
	}

	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	start := time.Now()
	res, err := r.db.ExecContext(ctx, query, id)
	metrics.ObserveDBRequest("delete:users", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, req pagination.Request) ([]entity.User, int64, error) {
	col, ok := userSortColumns[req.SortBy]
	if !ok {
		col = "created_at"
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// Secondary id key keeps the window deterministic across runs.
	query, args, err := psql.Select(userColumns).
		From("users").
		OrderBy(fmt.Sprintf("%s %s", col, req.Order), "id ASC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	var users []entity.User
	start := time.Now()
	err = r.db.SelectContext(ctx, &users, query, args...)
	metrics.ObserveDBRequest("select:users", time.Since(start))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	var total int64
	start = time.Now()
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`)
	metrics.ObserveDBRequest("count:users", time.Since(start))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}
