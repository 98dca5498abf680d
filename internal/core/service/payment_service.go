package service

import (
	"context"
	"time"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
)

var ErrPaymentNotFound = repository.ErrPaymentNotFound

type PaymentService struct {
	repo        repository.PaymentRepository
	users       repository.UserRepository
	memberships repository.MembershipRepository
}

func NewPaymentService(repo repository.PaymentRepository, users repository.UserRepository, memberships repository.MembershipRepository) *PaymentService {
	return &PaymentService{repo: repo, users: users, memberships: memberships}
}

// Create records a pending payment for a membership purchase. The amount is
// taken from the membership price, not from the request.
func (s *PaymentService) Create(ctx context.Context, req entity.PaymentRequest) (entity.Payment, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return entity.Payment{}, err
	}
	membership, err := s.memberships.GetByID(ctx, req.MembershipID)
	if err != nil {
		return entity.Payment{}, err
	}

	payment := entity.Payment{
		UserID:       req.UserID,
		MembershipID: req.MembershipID,
		AmountCents:  membership.PriceCents,
		Status:       entity.PaymentPending,
	}
	if err := s.repo.Create(ctx, &payment); err != nil {
		return entity.Payment{}, err
	}
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (entity.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]entity.Payment, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Complete settles a pending payment, stamping the settlement time.
func (s *PaymentService) Complete(ctx context.Context, id string) (entity.Payment, error) {
	if err := s.repo.MarkCompleted(ctx, id, time.Now()); err != nil {
		return entity.Payment{}, err
	}
	return s.repo.GetByID(ctx, id)
}
