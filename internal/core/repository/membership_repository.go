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
	ErrMembershipNotFound      = errors.New("membership not found")
	ErrMembershipAlreadyExists = errors.New("membership already exists")
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	GetByID(ctx context.Context, id string) (entity.Membership, error)
	GetByName(ctx context.Context, name string) (entity.Membership, error)
	Update(ctx context.Context, membership entity.Membership) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Membership, error)
}

type membershipRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewMembershipRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) MembershipRepository {
	return &membershipRepository{adapter: adapter, db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	_, err := r.GetByName(ctx, membership.Name)
	if err == nil {
		return ErrMembershipAlreadyExists
	} else if !errors.Is(err, ErrMembershipNotFound) {
		return fmt.Errorf("failed to check membership existence: %w", err)
	}

	if membership.ID == "" {
		membership.ID = uuid.NewString()
	}
	membership.CreatedAt = time.Now()

	return r.adapter.Create(ctx, membership, "memberships")
}

func (r *membershipRepository) GetByID(ctx context.Context, id string) (entity.Membership, error) {
	var membership entity.Membership
	err := r.adapter.Get(ctx, &membership, "memberships", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Membership{}, ErrMembershipNotFound
		}
		return entity.Membership{}, err
	}
	return membership, nil
}

func (r *membershipRepository) GetByName(ctx context.Context, name string) (entity.Membership, error) {
	var membership entity.Membership
	err := r.adapter.Get(ctx, &membership, "memberships", adapter.Condition{Equal: sq.Eq{"name": name}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Membership{}, ErrMembershipNotFound
		}
		return entity.Membership{}, err
	}
	return membership, nil
}

func (r *membershipRepository) Update(ctx context.Context, membership entity.Membership) error {
	if _, err := r.GetByID(ctx, membership.ID); err != nil {
		return err
	}
	return r.adapter.Update(ctx, membership, "memberships", adapter.Condition{Equal: sq.Eq{"id": membership.ID}})
}

func (r *membershipRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.adapter.Delete(ctx, "memberships", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *membershipRepository) List(ctx context.Context) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := r.adapter.List(ctx, &memberships, "memberships", adapter.Condition{Equal: sq.Eq{}}, "price_cents ASC")
	if err != nil {
		return nil, err
	}
	return memberships, nil
}
