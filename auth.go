package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

// AuthHandler issues JWT tokens backed by the user store.
type AuthHandler struct {
	users     *service.UserService
	tokenAuth *jwtauth.JWTAuth
	responder responder.Responder
}

func NewAuthHandler(users *service.UserService, tokenAuth *jwtauth.JWTAuth, responder responder.Responder) *AuthHandler {
	return &AuthHandler{
		users:     users,
		tokenAuth: tokenAuth,
		responder: responder,
	}
}

// LoginRequest carries form credentials.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"securepassword123"`
}

// GoogleSignInRequest carries the verified Google profile. Token verification
// against Google happens upstream at the gateway.
type GoogleSignInRequest struct {
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"user@gmail.com"`
}

// AuthResponse is the token plus the authenticated user.
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  entity.User `json:"user"`
}

func (h *AuthHandler) authErrorStatus(err error) int {
	var banned *service.BannedError
	switch {
	case errors.As(err, &banned):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuthHandler) issueToken(user entity.User) (string, error) {
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"sub":   user.ID,
		"email": user.Email,
	})
	return tokenString, err
}

// RegisterHandler godoc
// @Summary Register a new user
// @Description Create a form-auth account with a hashed password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body entity.RegisterUserRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterUserRequest
	if err := h.responder.Decode(r, &req); err != nil {
		h.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.responder.Error(w, h.authErrorStatus(err), err.Error())
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.responder.Respond(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// LoginHandler godoc
// @Summary Authenticate a user
// @Description Verify form credentials and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 403 {object} responder.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.responder.Decode(r, &req); err != nil {
		h.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.responder.Error(w, h.authErrorStatus(err), err.Error())
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.responder.Respond(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// GoogleSignInHandler godoc
// @Summary Sign in with Google
// @Description Sign in with a verified Google profile, creating an incomplete account on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleSignInRequest true "Google profile"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 403 {object} responder.ErrorResponse
// @Router /api/auth/google [post]
func (h *AuthHandler) GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	var req GoogleSignInRequest
	if err := h.responder.Decode(r, &req); err != nil {
		h.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Email == "" {
		h.responder.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.GoogleSignIn(r.Context(), req.Name, req.Email)
	if err != nil {
		h.responder.Error(w, h.authErrorStatus(err), err.Error())
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.responder.Respond(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// AuthMiddleware rejects requests without a valid bearer token.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		// Tolerate tokens sent without the "Bearer " prefix.
		if authHeader != "" && !strings.HasPrefix(authHeader, "Bearer ") {
			r.Header.Set("Authorization", "Bearer "+authHeader)
		}

		token, err := jwtauth.VerifyRequest(h.tokenAuth, r, jwtauth.TokenFromHeader)
		if err != nil || token == nil {
			h.responder.Error(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}
