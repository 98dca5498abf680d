package service

import (
	"context"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
)

var (
	ErrMembershipNotFound      = repository.ErrMembershipNotFound
	ErrMembershipAlreadyExists = repository.ErrMembershipAlreadyExists
)

type MembershipService struct {
	repo repository.MembershipRepository
}

func NewMembershipService(repo repository.MembershipRepository) *MembershipService {
	return &MembershipService{repo: repo}
}

func (s *MembershipService) Create(ctx context.Context, req entity.MembershipRequest) (entity.Membership, error) {
	membership := entity.Membership{
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		DurationDays: req.DurationDays,
	}
	if err := s.repo.Create(ctx, &membership); err != nil {
		return entity.Membership{}, err
	}
	return membership, nil
}

func (s *MembershipService) Get(ctx context.Context, id string) (entity.Membership, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MembershipService) Update(ctx context.Context, id string, req entity.MembershipRequest) (entity.Membership, error) {
	membership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Membership{}, err
	}

	membership.Name = req.Name
	membership.Description = req.Description
	membership.PriceCents = req.PriceCents
	membership.DurationDays = req.DurationDays

	if err := s.repo.Update(ctx, membership); err != nil {
		return entity.Membership{}, err
	}
	return membership, nil
}

func (s *MembershipService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *MembershipService) List(ctx context.Context) ([]entity.Membership, error) {
	return s.repo.List(ctx)
}
