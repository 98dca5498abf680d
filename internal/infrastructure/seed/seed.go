// Package seed loads a baseline data set so a fresh deployment starts with
// usable plans, staff and demo accounts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
)

// Fixed IDs keep reseeding idempotent and let later steps reference earlier
// rows without lookups.
const (
	membershipBasicID   = "a1f07f5b-3c65-4f4a-b6a8-4a8f6a1c0001"
	membershipPremiumID = "a1f07f5b-3c65-4f4a-b6a8-4a8f6a1c0002"

	userAnaID  = "b2e18a6c-4d76-4b5b-9c7d-5b9a7b2d0001"
	userLuisID = "b2e18a6c-4d76-4b5b-9c7d-5b9a7b2d0002"

	trainerCarlosID = "c3d29b7d-5e87-4c6c-8d8e-6c0b8c3e0001"
	trainerMartaID  = "c3d29b7d-5e87-4c6c-8d8e-6c0b8c3e0002"

	classSpinningID = "d4c30c8e-6f98-4d7d-9e9f-7d1c9d4f0001"
	classCrossfitID = "d4c30c8e-6f98-4d7d-9e9f-7d1c9d4f0002"

	paymentAnaID = "e5b41d9f-7a09-4e8e-8faf-8e2dae5a0001"

	routineFullBodyID = "f6a52eaf-8b10-4f9f-9abf-9f3ebf6b0001"
)

// Seeder loads the baseline data set step by step. Steps run in dependency
// order and the first failure aborts the run.
type Seeder struct {
	users       repository.UserRepository
	trainers    repository.TrainerRepository
	classes     repository.ClassRepository
	memberships repository.MembershipRepository
	payments    repository.PaymentRepository
	reviews     repository.ReviewRepository
	routines    repository.RoutineRepository
	log         *zap.Logger
}

func NewSeeder(
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	classes repository.ClassRepository,
	memberships repository.MembershipRepository,
	payments repository.PaymentRepository,
	reviews repository.ReviewRepository,
	routines repository.RoutineRepository,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		users:       users,
		trainers:    trainers,
		classes:     classes,
		memberships: memberships,
		payments:    payments,
		reviews:     reviews,
		routines:    routines,
		log:         log,
	}
}

// Run executes every seed step in order. Steps skip rows that already exist,
// so rerunning against a seeded database is a no-op.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"memberships", s.seedMemberships},
		{"users", s.seedUsers},
		{"trainers", s.seedTrainers},
		{"classes", s.seedClasses},
		{"payments", s.seedPayments},
		{"reviews", s.seedReviews},
		{"routines", s.seedRoutines},
	}

	for _, step := range steps {
		s.log.Info("seeding", zap.String("step", step.name))
		if err := step.fn(ctx); err != nil {
			s.log.Error("seed step failed", zap.String("step", step.name), zap.Error(err))
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	s.log.Info("seed complete")
	return nil
}

func (s *Seeder) seedMemberships(ctx context.Context) error {
	plans := []entity.Membership{
		{ID: membershipBasicID, Name: "Basic", Description: "Gym floor access", PriceCents: 2999, DurationDays: 30},
		{ID: membershipPremiumID, Name: "Premium", Description: "Full access including classes", PriceCents: 4999, DurationDays: 30},
	}
	for i := range plans {
		if err := s.memberships.Create(ctx, &plans[i]); err != nil {
			if errors.Is(err, repository.ErrMembershipAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	users := []entity.User{
		{ID: userAnaID, Name: "Ana Torres", Email: "ana@example.com", Password: &hash, Auth: entity.AuthForm},
		{ID: userLuisID, Name: "Luis Rojas", Email: "luis@example.com", Auth: entity.AuthGoogleIncomplete},
	}
	for i := range users {
		if err := s.users.Create(ctx, &users[i]); err != nil {
			if errors.Is(err, repository.ErrUserAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTrainers(ctx context.Context) error {
	trainers := []entity.Trainer{
		{ID: trainerCarlosID, Name: "Carlos Mendez", Specialty: "CrossFit", Bio: "Former national athlete.", ExperienceYears: 8},
		{ID: trainerMartaID, Name: "Marta Silva", Specialty: "Spinning", Bio: "Certified cycling coach.", ExperienceYears: 5},
	}
	for i := range trainers {
		if err := s.trainers.Create(ctx, &trainers[i]); err != nil {
			if errors.Is(err, repository.ErrTrainerAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Seeder) seedClasses(ctx context.Context) error {
	nextMonday := nextWeekday(time.Monday, 8)
	classes := []entity.GymClass{
		{ID: classSpinningID, Name: "Morning Spinning", Description: "45 minute ride", Capacity: 20, TrainerID: trainerMartaID, StartsAt: nextMonday},
		{ID: classCrossfitID, Name: "CrossFit WOD", Description: "Workout of the day", Capacity: 15, TrainerID: trainerCarlosID, StartsAt: nextMonday.Add(10 * time.Hour)},
	}
	for i := range classes {
		if err := s.classes.Create(ctx, &classes[i]); err != nil {
			if errors.Is(err, repository.ErrClassAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Seeder) seedPayments(ctx context.Context) error {
	if _, err := s.payments.GetByID(ctx, paymentAnaID); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrPaymentNotFound) {
		return err
	}

	payment := entity.Payment{
		ID:           paymentAnaID,
		UserID:       userAnaID,
		MembershipID: membershipPremiumID,
		AmountCents:  4999,
		Status:       entity.PaymentCompleted,
	}
	now := time.Now()
	payment.PaidAt = &now
	return s.payments.Create(ctx, &payment)
}

func (s *Seeder) seedReviews(ctx context.Context) error {
	review := entity.Review{
		UserID:    userAnaID,
		TrainerID: trainerCarlosID,
		Rating:    5,
		Comment:   "Tough but worth it.",
	}
	if err := s.reviews.Create(ctx, &review); err != nil && !errors.Is(err, repository.ErrReviewAlreadyExists) {
		return err
	}
	return nil
}

func (s *Seeder) seedRoutines(ctx context.Context) error {
	routine := entity.Routine{
		ID:          routineFullBodyID,
		Name:        "Full Body Beginner",
		Description: "Three day full body split for new members.",
		Difficulty:  "beginner",
	}
	if err := s.routines.Create(ctx, &routine); err != nil && !errors.Is(err, repository.ErrRoutineAlreadyExists) {
		return err
	}
	return nil
}

// nextWeekday returns the next occurrence of day at the given hour.
func nextWeekday(day time.Weekday, hour int) time.Time {
	now := time.Now()
	days := (int(day) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	next := now.AddDate(0, 0, days)
	return time.Date(next.Year(), next.Month(), next.Day(), hour, 0, 0, 0, next.Location())
}
