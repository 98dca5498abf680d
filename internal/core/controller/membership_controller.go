package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gitlab.com/forgefit/gymcore/internal/core/entity"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type MembershipController struct {
	membershipService *service.MembershipService
	responder         responder.Responder
}

func NewMembershipController(membershipService *service.MembershipService, responder responder.Responder) *MembershipController {
	return &MembershipController{
		membershipService: membershipService,
		responder:         responder,
	}
}

func membershipErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrMembershipNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMembershipAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateMembership godoc
// @Summary Create membership plan
// @Tags memberships
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.MembershipRequest true "Plan data"
// @Success 201 {object} entity.Membership
// @Failure 400 {object} responder.ErrorResponse
// @Failure 409 {object} responder.ErrorResponse
// @Router /api/memberships [post]
func (c *MembershipController) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req entity.MembershipRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	membership, err := c.membershipService.Create(r.Context(), req)
	if err != nil {
		c.responder.Error(w, membershipErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusCreated, membership)
}

// GetMembership godoc
// @Summary Get membership plan by ID
// @Tags memberships
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} entity.Membership
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/memberships/{id} [get]
func (c *MembershipController) GetMembership(w http.ResponseWriter, r *http.Request) {
	membership, err := c.membershipService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.responder.Error(w, membershipErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, membership)
}

// ListMemberships godoc
// @Summary List membership plans
// @Tags memberships
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} entity.Membership
// @Router /api/memberships [get]
func (c *MembershipController) ListMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := c.membershipService.List(r.Context())
	if err != nil {
		c.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, memberships)
}

// UpdateMembership godoc
// @Summary Update membership plan
// @Tags memberships
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Membership ID"
// @Param request body entity.MembershipRequest true "Plan data"
// @Success 200 {object} entity.Membership
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/memberships/{id} [put]
func (c *MembershipController) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	var req entity.MembershipRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	membership, err := c.membershipService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		c.responder.Error(w, membershipErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, membership)
}

// DeleteMembership godoc
// @Summary Delete membership plan
// @Tags memberships
// @Security ApiKeyAuth
// @Param id path string true "Membership ID"
// @Success 204 "No Content"
// @Failure 404 {object} responder.ErrorResponse
// @Router /api/memberships/{id} [delete]
func (c *MembershipController) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	if err := c.membershipService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.responder.Error(w, membershipErrorStatus(err), err.Error())
		return
	}

	c.responder.Respond(w, http.StatusNoContent, nil)
}
