package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type PaymentController struct {
	paymentService *service.PaymentService
	responder      responder.Responder
}

func NewPaymentController(paymentService *service.PaymentService, responder responder.Responder) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		responder:      responder,
	}
}

func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMembershipNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CreatePayment godoc
// @Summary Record payment
// @Description Record a pending payment for a membership purchase
// @Tags payments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.PaymentRequest true "Payment data"
// @Success 201 {object} entity.Payment
// @Failure 400 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/payments [post]
func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req entity.PaymentRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	payment, err := c.paymentService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, paymentErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, payment)
}

// GetPayment godoc
// @Summary Get payment by ID
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} entity.Payment
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/payments/{id} [get]
func (c *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := c.paymentService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, paymentErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, payment)
}

// ListUserPayments godoc
// @Summary List payments for a user
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {array} entity.Payment
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/users/{id}/payments [get]
func (c *PaymentController) ListUserPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := c.paymentService.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, paymentErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, payments)
}

// CompletePayment godoc
// @Summary Complete payment
// @Description Settle a pending payment
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} entity.Payment
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/payments/{id}/complete [post]
func (c *PaymentController) CompletePayment(w http.ResponseWriter, r *http.Request) {
	payment, err := c.paymentService.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, paymentErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, payment)
}
