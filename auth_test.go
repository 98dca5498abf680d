package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

const testJWTSecret = "test-secret-key-for-testing-purposes-only"

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]entity.User
	emails map[string]string
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]entity.User),
		emails: make(map[string]string),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.emails[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = "user-" + strconv.Itoa(f.nextID)
		f.nextID++
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	f.emails[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.emails[email]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmailWithPayments(ctx context.Context, email string) (entity.User, error) {
	return f.GetByEmail(ctx, email)
}

func (f *fakeUserRepo) UpdateTx(ctx context.Context, id string, mutate func(*entity.User) error) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	if err := mutate(&user); err != nil {
		return entity.User{}, err
	}
	user.UpdatedAt = time.Now()
	f.users[id] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	delete(f.emails, user.Email)
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, req pagination.Request) ([]entity.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func newTestAuthHandler() (*AuthHandler, *fakeUserRepo) {
	repo := newFakeUserRepo()
	userService := service.NewUserService(repo, zap.NewNop())
	tokenAuth := jwtauth.New("HS256", []byte(testJWTSecret), nil)
	return NewAuthHandler(userService, tokenAuth, responder.NewJSONResponder()), repo
}

func generateTestToken(auth *AuthHandler, userID string) string {
	_, tokenString, _ := auth.tokenAuth.Encode(map[string]interface{}{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	return tokenString
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegisterHandler_Success(t *testing.T) {
	auth, repo := newTestAuthHandler()

	rr := postJSON(t, auth.RegisterHandler, "/api/auth/register", entity.RegisterUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "securepassword123",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.Nil(t, resp.User.Password, "response must not carry the hash")

	stored, err := repo.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.AuthForm, stored.Auth)
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "securepassword123", *stored.Password)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthHandler()

	body := entity.RegisterUserRequest{Name: "A", Email: "dup@example.com", Password: "password123"}
	postJSON(t, auth.RegisterHandler, "/api/auth/register", body)
	rr := postJSON(t, auth.RegisterHandler, "/api/auth/register", body)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegisterHandler_InvalidBody(t *testing.T) {
	auth, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("invalid json")))
	rr := httptest.NewRecorder()
	auth.RegisterHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	auth, _ := newTestAuthHandler()
	postJSON(t, auth.RegisterHandler, "/api/auth/register", entity.RegisterUserRequest{
		Name: "L", Email: "login@example.com", Password: "correctpassword",
	})

	rr := postJSON(t, auth.LoginHandler, "/api/auth/login", LoginRequest{
		Email:    "login@example.com",
		Password: "correctpassword",
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthHandler()
	postJSON(t, auth.RegisterHandler, "/api/auth/register", entity.RegisterUserRequest{
		Name: "L", Email: "login@example.com", Password: "correctpassword",
	})

	rr := postJSON(t, auth.LoginHandler, "/api/auth/login", LoginRequest{
		Email:    "login@example.com",
		Password: "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	auth, _ := newTestAuthHandler()

	rr := postJSON(t, auth.LoginHandler, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "password",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginHandler_BannedAccount(t *testing.T) {
	auth, repo := newTestAuthHandler()
	postJSON(t, auth.RegisterHandler, "/api/auth/register", entity.RegisterUserRequest{
		Name: "B", Email: "banned@example.com", Password: "password123",
	})

	stored, err := repo.GetByEmail(context.Background(), "banned@example.com")
	require.NoError(t, err)
	reason := "Payment fraud"
	_, err = repo.UpdateTx(context.Background(), stored.ID, func(u *entity.User) error {
		u.Banned = true
		u.BanReason = &reason
		return nil
	})
	require.NoError(t, err)

	rr := postJSON(t, auth.LoginHandler, "/api/auth/login", LoginRequest{
		Email:    "banned@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Payment fraud")
}

func TestGoogleSignInHandler_FirstSignIn(t *testing.T) {
	auth, repo := newTestAuthHandler()

	rr := postJSON(t, auth.GoogleSignInHandler, "/api/auth/google", GoogleSignInRequest{
		Name:  "Jane Doe",
		Email: "jane@gmail.com",
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	stored, err := repo.GetByEmail(context.Background(), "jane@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, entity.AuthGoogleIncomplete, stored.Auth)
	assert.Nil(t, stored.Password)
}

func TestGoogleSignInHandler_MissingEmail(t *testing.T) {
	auth, _ := newTestAuthHandler()

	rr := postJSON(t, auth.GoogleSignInHandler, "/api/auth/google", GoogleSignInRequest{Name: "X"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	auth, _ := newTestAuthHandler()
	next := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuthMiddleware_AcceptsTokenWithoutBearerPrefix(t *testing.T) {
	auth, _ := newTestAuthHandler()
	next := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", generateTestToken(auth, "u1"))
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddleware_RejectsExpiredToken(t *testing.T) {
	auth, _ := newTestAuthHandler()
	next := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, expired, _ := auth.tokenAuth.Encode(map[string]interface{}{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
