package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type ReviewController struct {
	reviewService *service.ReviewService
	responder     responder.Responder
}

func NewReviewController(reviewService *service.ReviewService, responder responder.Responder) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		responder:     responder,
	}
}

func reviewErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTrainerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrReviewAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateReview godoc
// @Summary Post review
// @Description Post a trainer review, one per member per trainer
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.ReviewRequest true "Review data"
// @Success 201 {object} entity.Review
// @Failure 400 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Router /api/reviews [post]
func (c *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req entity.ReviewRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	review, err := c.reviewService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, reviewErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, review)
}

// GetReview godoc
// @Summary Get review by ID
// @Tags reviews
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Review ID"
// @Success 200 {object} entity.Review
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/reviews/{id} [get]
func (c *ReviewController) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := c.reviewService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, reviewErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, review)
}

// ListTrainerReviews godoc
// @Summary List reviews for a trainer
// @Tags reviews
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Trainer ID"
// @Success 200 {array} entity.Review
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/trainers/{id}/reviews [get]
func (c *ReviewController) ListTrainerReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.reviewService.ListByTrainer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, reviewErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, reviews)
}

// DeleteReview godoc
// @Summary Delete review
// @Tags reviews
// @Security ApiKeyAuth
// @Param id path string true "Review ID"
// @Success 204 "No Content"
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := c.reviewService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.responder.Error(w, reviewErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusNoContent, nil)
}
