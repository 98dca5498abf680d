package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
	// writes counts committed UpdateTx mutations so tests can assert that
	// rejected updates never reach the store. lastWrite holds the record as
	// it would have been persisted.
	writes    int
	lastWrite entity.User
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (entity.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailWithPayments(ctx context.Context, email string) (entity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entity.User), args.Error(1)
}

// UpdateTx mirrors the real transaction: the stored user configured via
// mock.On is handed to mutate, and a mutate error means nothing is written.
func (m *MockUserRepository) UpdateTx(ctx context.Context, id string, mutate func(*entity.User) error) (entity.User, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return entity.User{}, err
	}
	user := args.Get(0).(entity.User)
	if err := mutate(&user); err != nil {
		return entity.User{}, err
	}
	m.writes++
	m.lastWrite = user
	return user, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, req pagination.Request) ([]entity.User, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Get(1).(int64), args.Error(2)
}

func strPtr(s string) *string { return &s }

func testUser(id, email string) entity.User {
	hash := "$2a$10$testhash"
	return entity.User{
		ID:        id,
		Name:      "Test User",
		Email:     email,
		Password:  &hash,
		Auth:      entity.AuthForm,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestUserService_UpdateUser_FormMergesPatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "form@example.com")
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	updated, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Phone: strPtr("555-1234")})

	require.NoError(t, err)
	assert.Equal(t, "555-1234", *updated.Phone)
	assert.Equal(t, entity.AuthForm, updated.Auth, "form accounts keep their auth mode")
	assert.Equal(t, "Test User", updated.Name, "fields absent from the patch are untouched")
	assert.Nil(t, updated.Password, "returned user is sanitized")
	assert.Equal(t, 1, mockRepo.writes)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "form@example.com")
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	_, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Password: strPtr("newsecret")})
	require.NoError(t, err)

	written := mockRepo.lastWrite
	require.NotNil(t, written.Password)
	assert.NotEqual(t, "newsecret", *written.Password, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*written.Password), []byte("newsecret")))
}

func TestUserService_UpdateUser_BannedRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "banned@example.com")
	stored.Banned = true
	stored.BanReason = strPtr("Repeated no-shows")
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	_, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Name: strPtr("New Name")})

	var banned *BannedError
	require.ErrorAs(t, err, &banned)
	assert.Equal(t, "your account has been banned. Reason: Repeated no-shows", banned.Error())
	assert.Zero(t, mockRepo.writes, "a banned account must not be written")
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_BannedDefaultReason(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "banned@example.com")
	stored.Banned = true
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	_, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{})

	var banned *BannedError
	require.ErrorAs(t, err, &banned)
	assert.Equal(t, "your account has been banned. Reason: No reason provided.", banned.Error())
}

func TestUserService_UpdateUser_GoogleIncompletePromoted(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "google@example.com")
	stored.Auth = entity.AuthGoogleIncomplete
	stored.Password = nil
	stored.Phone = nil
	stored.Country = nil
	stored.Address = nil
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	updated, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{
		Password: strPtr("secret"),
		Phone:    strPtr("555-0000"),
		Country:  strPtr("AR"),
		Address:  strPtr("Av. Siempre Viva 742"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AuthGoogle, updated.Auth, "completing the profile promotes the account")
	assert.Equal(t, "AR", *updated.Country)
	assert.Equal(t, 1, mockRepo.writes)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_GoogleIncompletePartialPatchStillPromotes(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "google@example.com")
	stored.Auth = entity.AuthGoogleIncomplete
	stored.Password = nil
	stored.Phone = nil
	stored.Country = strPtr("AR")
	stored.Address = nil
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	updated, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Phone: strPtr("555-0000")})

	require.NoError(t, err)
	assert.Equal(t, entity.AuthGoogle, updated.Auth)
	assert.Nil(t, updated.Address, "unpatched fields stay null after promotion")
}

func TestUserService_UpdateUser_GoogleIncompleteFullyPopulatedFails(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "google@example.com")
	stored.Auth = entity.AuthGoogleIncomplete
	stored.Phone = strPtr("555-0000")
	stored.Country = strPtr("AR")
	stored.Address = strPtr("Av. Siempre Viva 742")
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	_, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Name: strPtr("New Name")})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, mockRepo.writes, "the unhandled state must not be written")
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_GoogleMergesPatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "google@example.com")
	stored.Auth = entity.AuthGoogle
	mockRepo.On("UpdateTx", ctx, "u1").Return(stored, nil)

	updated, err := svc.UpdateUser(ctx, "u1", entity.UpdateUserRequest{Name: strPtr("Renamed")})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, entity.AuthGoogle, updated.Auth)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("UpdateTx", ctx, "missing").Return(entity.User{}, repository.ErrUserNotFound)

	_, err := svc.UpdateUser(ctx, "missing", entity.UpdateUserRequest{})

	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserByID_Sanitized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "test@example.com")
	mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)

	user, err := svc.GetUserByID(ctx, "u1")

	require.NoError(t, err)
	assert.Nil(t, user.Password, "password hash must not leave the service")
	assert.Equal(t, stored.Email, user.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "missing").Return(entity.User{}, repository.ErrUserNotFound)

	_, err := svc.GetUserByID(ctx, "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUserByEmail_LoadsPayments(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "payer@example.com")
	stored.Payments = []entity.Payment{{ID: "p1", UserID: "u1", AmountCents: 4999}}
	mockRepo.On("GetByEmailWithPayments", ctx, "payer@example.com").Return(stored, nil)

	user, err := svc.GetUserByEmail(ctx, "payer@example.com")

	require.NoError(t, err)
	require.Len(t, user.Payments, 1)
	assert.Equal(t, int64(4999), user.Payments[0].AmountCents)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserByEmail_NotFoundPassesThrough(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetByEmailWithPayments", ctx, "missing@example.com").
		Return(entity.User{}, repository.ErrUserNotFound)

	_, err := svc.GetUserByEmail(ctx, "missing@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUserByEmail_StoreFailureMasked(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetByEmailWithPayments", ctx, "test@example.com").
		Return(entity.User{}, errors.New("connection refused"))

	_, err := svc.GetUserByEmail(ctx, "test@example.com")

	assert.ErrorIs(t, err, ErrInternal, "store failures must not leak to the caller")
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_ReturnsSnapshot(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "bye@example.com")
	mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)
	mockRepo.On("Delete", ctx, "u1").Return(nil)

	user, err := svc.DeleteUser(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "bye@example.com", user.Email)
	assert.Nil(t, user.Password)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "missing").Return(entity.User{}, repository.ErrUserNotFound)

	_, err := svc.DeleteUser(ctx, "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_ListUsers_Sanitized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	req := pagination.Request{Page: 1, Limit: 2, SortBy: "created_at", Order: pagination.Asc}
	stored := []entity.User{testUser("u1", "a@example.com"), testUser("u2", "b@example.com")}
	mockRepo.On("List", ctx, req).Return(stored, int64(5), nil)

	res, err := svc.ListUsers(ctx, req)

	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	for _, u := range res.Items {
		assert.Nil(t, u.Password)
	}
	assert.Equal(t, int64(5), res.TotalElements)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNextPage)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ListUsers_InvalidLimit(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	req := pagination.Request{Page: 1, Limit: 0}

	_, err := svc.ListUsers(ctx, req)

	assert.ErrorIs(t, err, pagination.ErrInvalidLimit)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUserService_Register_HashesAndSanitizes(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	var captured entity.User
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		captured = *u
		return true
	})).Return(nil)

	user, err := svc.Register(ctx, "New Member", "new@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, entity.AuthForm, captured.Auth)
	require.NotNil(t, captured.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*captured.Password), []byte("password123")))
	assert.Nil(t, user.Password)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.Anything).Return(repository.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, "Dup", "existing@example.com", "password123")

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserService_GoogleSignIn_CreatesIncompleteProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "new@gmail.com").Return(entity.User{}, repository.ErrUserNotFound)

	var captured entity.User
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		captured = *u
		return true
	})).Return(nil)

	_, err := svc.GoogleSignIn(ctx, "New Member", "new@gmail.com")

	require.NoError(t, err)
	assert.Equal(t, entity.AuthGoogleIncomplete, captured.Auth)
	assert.Nil(t, captured.Password, "google sign-ins have no password until the profile is completed")
	mockRepo.AssertExpectations(t)
}

func TestUserService_GoogleSignIn_BannedRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "banned@gmail.com")
	stored.Banned = true
	mockRepo.On("GetByEmail", ctx, "banned@gmail.com").Return(stored, nil)

	_, err := svc.GoogleSignIn(ctx, "Banned", "banned@gmail.com")

	var banned *BannedError
	assert.ErrorAs(t, err, &banned)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := testUser("u1", "test@example.com")
	hash := string(hashed)
	stored.Password = &hash
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(stored, nil)

	user, err := svc.Login(ctx, "test@example.com", "correct")

	require.NoError(t, err)
	assert.Nil(t, user.Password)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := testUser("u1", "test@example.com")
	hash := string(hashed)
	stored.Password = &hash
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(stored, nil)

	_, err = svc.Login(ctx, "test@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Login_NoPasswordSet(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, zap.NewNop())

	ctx := context.Background()
	stored := testUser("u1", "google@example.com")
	stored.Password = nil
	stored.Auth = entity.AuthGoogleIncomplete
	mockRepo.On("GetByEmail", ctx, "google@example.com").Return(stored, nil)

	_, err := svc.Login(ctx, "google@example.com", "anything")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
