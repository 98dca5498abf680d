package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
)

var (
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrUserAlreadyExists  = repository.ErrUserAlreadyExists
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInternal masks store failures and unhandled states behind a generic
	// message; callers cannot distinguish the underlying cause.
	ErrInternal = errors.New("internal server error")
)

// BannedError rejects any operation on a banned account, carrying the
// stored ban reason.
type BannedError struct {
	Reason string
}

func (e *BannedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "No reason provided."
	}
	return fmt.Sprintf("your account has been banned. Reason: %s", reason)
}

// UserService enforces the business rules around reading and mutating
// member accounts.
type UserService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a form-auth user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}

	hash := string(hashed)
	user := entity.User{
		Name:     name,
		Email:    email,
		Password: &hash,
		Auth:     entity.AuthForm,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return entity.User{}, err
	}

	return user.WithoutPassword(), nil
}

// GoogleSignIn returns the account for email, creating a googleIncomplete
// user with a null password on first sign-in. The profile stays incomplete
// until the member fills it in through UpdateUser.
func (s *UserService) GoogleSignIn(ctx context.Context, name, email string) (entity.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if user.Banned {
			return entity.User{}, &BannedError{Reason: deref(user.BanReason)}
		}
		return user.WithoutPassword(), nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return entity.User{}, err
	}

	user = entity.User{
		Name:  name,
		Email: email,
		Auth:  entity.AuthGoogleIncomplete,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return entity.User{}, err
	}

	return user.WithoutPassword(), nil
}

// Login verifies form credentials. Banned accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (entity.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return entity.User{}, err
	}

	if user.Banned {
		return entity.User{}, &BannedError{Reason: deref(user.BanReason)}
	}
	if user.Password == nil {
		return entity.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return entity.User{}, ErrInvalidCredentials
	}

	return user.WithoutPassword(), nil
}

// UpdateUser applies a profile patch under the auth-mode merge policy:
//
//   - form: the patch is merged unconditionally;
//   - googleIncomplete: the merge is permitted only while at least one of
//     password, phone, country or address is still null on the stored
//     record, and promotes the account to google; a fully populated record
//     is an unhandled state and fails;
//   - google: the patch is merged unconditionally.
//
// The read-check-write sequence runs in a single row-locked transaction, so
// the ban check and the merge cannot race a concurrent update. Exactly one
// write happens on success and none on any failure.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch entity.UpdateUserRequest) (entity.User, error) {
	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, err
		}
		hash := string(hashed)
		patch.Password = &hash
	}

	updated, err := s.repo.UpdateTx(ctx, id, func(user *entity.User) error {
		if user.Banned {
			return &BannedError{Reason: deref(user.BanReason)}
		}

		switch user.Auth {
		case entity.AuthForm:
			applyPatch(user, patch)
			return nil
		case entity.AuthGoogleIncomplete:
			if user.Password == nil || user.Phone == nil || user.Country == nil || user.Address == nil {
				applyPatch(user, patch)
				user.Auth = entity.AuthGoogle
				return nil
			}
			// googleIncomplete with every gating field populated has no
			// defined business outcome; fail loudly rather than silently
			// ignore the patch.
			s.log.Error("unhandled auth state on update",
				zap.String("user_id", user.ID),
				zap.String("auth", string(user.Auth)))
			return ErrInternal
		case entity.AuthGoogle:
			applyPatch(user, patch)
			return nil
		}

		s.log.Error("unknown auth mode", zap.String("user_id", user.ID), zap.String("auth", string(user.Auth)))
		return ErrInternal
	})
	if err != nil {
		return entity.User{}, err
	}

	return updated.WithoutPassword(), nil
}

// GetUserByID returns the user with the password stripped from the result.
func (s *UserService) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}
	return user.WithoutPassword(), nil
}

// GetUserByEmail returns the user with their payments eagerly loaded. Any
// store failure other than a plain miss is collapsed into ErrInternal: this
// is a deliberate information-hiding boundary for the auth flow.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	user, err := s.repo.GetByEmailWithPayments(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return entity.User{}, ErrUserNotFound
		}
		s.log.Error("failed to look up user by email", zap.Error(err))
		return entity.User{}, ErrInternal
	}
	return user, nil
}

// DeleteUser permanently removes the user and returns the pre-deletion
// snapshot. A missing id fails with not-found instead of deleting nothing.
func (s *UserService) DeleteUser(ctx context.Context, id string) (entity.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return entity.User{}, err
	}

	return user.WithoutPassword(), nil
}

// ListUsers returns one page of sanitized users.
func (s *UserService) ListUsers(ctx context.Context, req pagination.Request) (pagination.Result[entity.User], error) {
	if err := req.Validate(); err != nil {
		return pagination.Result[entity.User]{}, err
	}

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return pagination.Result[entity.User]{}, err
	}

	sanitized := make([]entity.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.WithoutPassword())
	}

	return pagination.NewResult(sanitized, total, req), nil
}

func applyPatch(user *entity.User, patch entity.UpdateUserRequest) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Password != nil {
		user.Password = patch.Password
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.Country != nil {
		user.Country = patch.Country
	}
	if patch.Address != nil {
		user.Address = patch.Address
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
