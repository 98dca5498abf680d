package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/pagination"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type ClassController struct {
	classService *service.ClassService
	responder    responder.Responder
}

func NewClassController(classService *service.ClassService, responder responder.Responder) *ClassController {
	return &ClassController{
		classService: classService,
		responder:    responder,
	}
}

func classErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrClassNotFound), errors.Is(err, service.ErrTrainerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrClassAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, pagination.ErrInvalidLimit), errors.Is(err, pagination.ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateClass godoc
// @Summary Create class
// @Description Schedule a class led by an existing trainer
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.GymClassRequest true "Class data"
// @Success 201 {object} entity.GymClass
// @Failure 400 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Router /api/classes [post]
func (c *ClassController) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req entity.GymClassRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	class, err := c.classService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, classErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, class)
}

// GetClass godoc
// @Summary Get class by ID
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Class ID"
// @Success 200 {object} entity.GymClass
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/classes/{id} [get]
func (c *ClassController) GetClass(w http.ResponseWriter, r *http.Request) {
	class, err := c.classService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, classErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, class)
}

// ListClasses godoc
// @Summary List classes
// @Description Get one page of the class schedule
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortBy query string false "Sort column" default(starts_at)
// @Param order query string false "ASC or DESC" default(ASC)
// @Success 200 {object} pagination.Result[entity.GymClass]
// @Failure 400 {object} responder.ErrorResponse
// @Router /api/classes [get]
func (c *ClassController) ListClasses(w http.ResponseWriter, r *http.Request) {
	req := parsePageRequest(r, "starts_at")

	res, err := c.classService.List(r.Context(), req)
	if err != nil {
		c.responder.Error(w, classErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, res)
}

// UpdateClass godoc
// @Summary Update class
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Class ID"
// @Param request body entity.GymClassRequest true "Class data"
// @Success 200 {object} entity.GymClass
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/classes/{id} [put]
func (c *ClassController) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req entity.GymClassRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	class, err := c.classService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		c.responder.Error(w, classErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, class)
}

// DeleteClass godoc
// @Summary Delete class
// @Tags classes
// @Security ApiKeyAuth
// @Param id path string true "Class ID"
// @Success 204 "No Content"
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/classes/{id} [delete]
func (c *ClassController) DeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := c.classService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.responder.Error(w, classErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusNoContent, nil)
}
