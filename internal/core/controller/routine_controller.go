package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

// maxMediaUpload caps routine media uploads at 32 MiB.
const maxMediaUpload = 32 << 20

type RoutineController struct {
	routineService *service.RoutineService
	responder      responder.Responder
}

func NewRoutineController(routineService *service.RoutineService, responder responder.Responder) *RoutineController {
	return &RoutineController{
		routineService: routineService,
		responder:      responder,
	}
}

func routineErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRoutineNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRoutineAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateRoutine godoc
// @Summary Create routine
// @Tags routines
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.RoutineRequest true "Routine data"
// @Success 201 {object} entity.Routine
// @Failure 400 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Router /api/routines [post]
func (c *RoutineController) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	var req entity.RoutineRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	routine, err := c.routineService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, routineErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, routine)
}

// GetRoutine godoc
// @Summary Get routine by ID
// @Tags routines
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Routine ID"
// @Success 200 {object} entity.Routine
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/routines/{id} [get]
func (c *RoutineController) GetRoutine(w http.ResponseWriter, r *http.Request) {
	routine, err := c.routineService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, routineErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, routine)
}

// ListRoutines godoc
// @Summary List routines
// @Tags routines
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} entity.Routine
// @Router /api/routines [get]
func (c *RoutineController) ListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := c.routineService.List(r.Context())
	if err != nil {
		c.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, routines)
}

// UpdateRoutine godoc
// @Summary Update routine
// @Tags routines
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Routine ID"
// @Param request body entity.RoutineRequest true "Routine data"
// @Success 200 {object} entity.Routine
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/routines/{id} [put]
func (c *RoutineController) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	var req entity.RoutineRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	routine, err := c.routineService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		c.responder.Error(w, routineErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, routine)
}

// DeleteRoutine godoc
// @Summary Delete routine
// @Tags routines
// @Security ApiKeyAuth
// @Param id path string true "Routine ID"
// @Success 204 "No Content"
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/routines/{id} [delete]
func (c *RoutineController) DeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := c.routineService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.responder.Error(w, routineErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusNoContent, nil)
}

// UploadRoutineMedia godoc
// @Summary Upload routine media
// @Description Attach a demo video or image to the routine
// @Tags routines
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Routine ID"
// @Param file formData file true "Media file"
// @Success 200 {object} entity.Routine
// @Failure 400 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/routines/{id}/media [post]
func (c *RoutineController) UploadRoutineMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMediaUpload); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		c.responder.Error(w, http.StatusBadRequest, "File field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	routine, err := c.routineService.AttachMedia(r.Context(), chi.URLParam(r, "id"), contentType, file)
	if err != nil {
		c.responder.Error(w, routineErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, routine)
}
