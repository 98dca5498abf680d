package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type TrainerController struct {
	trainerService *service.TrainerService
	responder      responder.Responder
}

func NewTrainerController(trainerService *service.TrainerService, responder responder.Responder) *TrainerController {
	return &TrainerController{
		trainerService: trainerService,
		responder:      responder,
	}
}

func trainerErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTrainerAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateTrainer godoc
// @Summary Create trainer
// @Tags trainers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.TrainerRequest true "Trainer data"
// @Success 201 {object} entity.Trainer
// @Failure 400 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Router /api/trainers [post]
func (c *TrainerController) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req entity.TrainerRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	trainer, err := c.trainerService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, trainerErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, trainer)
}

// GetTrainer godoc
// @Summary Get trainer by ID
// @Tags trainers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Trainer ID"
// @Success 200 {object} entity.Trainer
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/trainers/{id} [get]
func (c *TrainerController) GetTrainer(w http.ResponseWriter, r *http.Request) {
	trainer, err := c.trainerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, trainerErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, trainer)
}

// ListTrainers godoc
// @Summary List trainers
// @Tags trainers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} entity.Trainer
// @Router /api/trainers [get]
func (c *TrainerController) ListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := c.trainerService.List(r.Context())
	if err != nil {
		c.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, trainers)
}

// UpdateTrainer godoc
// @Summary Update trainer
// @Tags trainers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Trainer ID"
// @Param request body entity.TrainerRequest true "Trainer data"
// @Success 200 {object} entity.Trainer
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/trainers/{id} [put]
func (c *TrainerController) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	var req entity.TrainerRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	trainer, err := c.trainerService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		c.responder.Error(w, trainerErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, trainer)
}

// DeleteTrainer godoc
// @Summary Delete trainer
// @Tags trainers
// @Security ApiKeyAuth
// @Param id path string true "Trainer ID"
// @Success 204 "No Content"
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/trainers/{id} [delete]
func (c *TrainerController) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	if err := c.trainerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.responder.Error(w, trainerErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusNoContent, nil)
}
