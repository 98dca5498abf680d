package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/db/adapter"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (entity.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Payment, error)
	MarkCompleted(ctx context.Context, id string, paidAt time.Time) error
}

type paymentRepository struct {
	adapter *adapter.SQLAdapter
	db      *sqlx.DB
}

func NewPaymentRepository(adapter *adapter.SQLAdapter, db *sqlx.DB) PaymentRepository {
	return &paymentRepository{adapter: adapter, db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.Status == "" {
		payment.Status = entity.PaymentPending
	}
	payment.CreatedAt = time.Now()

	return r.adapter.Create(ctx, payment, "payments")
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (entity.Payment, error) {
	var payment entity.Payment
	err := r.adapter.Get(ctx, &payment, "payments", adapter.Condition{Equal: sq.Eq{"id": id}})
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return entity.Payment{}, ErrPaymentNotFound
		}
		return entity.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.adapter.List(ctx, &payments, "payments",
		adapter.Condition{Equal: sq.Eq{"user_id": userID}}, "created_at DESC", "id ASC")
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) MarkCompleted(ctx context.Context, id string, paidAt time.Time) error {
	payment := entity.Payment{Status: entity.PaymentCompleted, PaidAt: &paidAt}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.adapter.Update(ctx, payment, "payments", adapter.Condition{Equal: sq.Eq{"id": id}})
}
