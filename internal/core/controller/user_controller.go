package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type UserController struct {
	userService *service.UserService
	responder   responder.Responder
}

func NewUserController(userService *service.UserService, responder responder.Responder) *UserController {
	return &UserController{
		userService: userService,
		responder:   responder,
	}
}

// userErrorStatus maps service errors to HTTP statuses shared by the user
// endpoints.
func userErrorStatus(err error) int {
	var banned *service.BannedError
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.As(err, &banned):
		return http.StatusForbidden
	case errors.Is(err, pagination.ErrInvalidLimit), errors.Is(err, pagination.ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parsePageRequest reads the listing window from the query string.
func parsePageRequest(r *http.Request, defaultSort string) pagination.Request {
	q := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && q.Get("page") != "" {
		page = v
	}
	limit := 10
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && q.Get("limit") != "" {
		limit = v
	}
	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = defaultSort
	}

	return pagination.Request{
		Page:   page,
		Limit:  limit,
		SortBy: sortBy,
		Order:  pagination.ParseOrder(q.Get("order")),
	}
}

// GetUser godoc
// @Summary Get user by ID
// @Description Get user details by ID, password omitted
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} entity.User
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := c.userService.GetUserByID(r.Context(), id)
	if err != nil {
		c.responder.Error(w, userErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, user)
}

// GetUserByEmail godoc
// @Summary Get user by email
// @Description Get user details by email address, payments included
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param email query string true "User email"
// @Success 200 {object} entity.User
// @Failure 400 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/users/email [get]
func (c *UserController) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		c.responder.Error(w, http.StatusBadRequest, "Email parameter is required")
		return
	}

	user, err := c.userService.GetUserByEmail(r.Context(), email)
	if err != nil {
		c.responder.Error(w, userErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Description Get one page of users sorted by the requested column
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortBy query string false "Sort column" default(created_at)
// @Param order query string false "ASC or DESC" default(ASC)
// @Success 200 {object} pagination.Result[entity.User]
// @Failure 400 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := parsePageRequest(r, "created_at")

	res, err := c.userService.ListUsers(r.Context(), req)
	if err != nil {
		c.responder.Error(w, userErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, res)
}

// UpdateUser godoc
// @Summary Update user
// @Description Patch user profile fields, subject to the account's auth mode
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param request body entity.UpdateUserRequest true "Profile patch"
// @Success 200 {object} entity.User
// @Failure 400 {object} responder.ErrorResponse
// @Failure 403 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/users/{id} [patch]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.UpdateUserRequest
	if err := c.responder.Decode(r, &patch); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := c.userService.UpdateUser(r.Context(), id, patch)
	if err != nil {
		c.responder.Error(w, userErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Permanently delete a user, returning the removed record
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} entity.User
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/users/{id} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := c.userService.DeleteUser(r.Context(), id)
	if err != nil {
		c.responder.Error(w, userErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, user)
}
