package controller

import (
	"net/http"

	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/pkg/responder"
)

type AddressController struct {
	suggester service.AddressSuggester
	responder responder.Responder
}

func NewAddressController(suggester service.AddressSuggester, responder responder.Responder) *AddressController {
	return &AddressController{
		suggester: suggester,
		responder: responder,
	}
}

// SuggestRequest is the address autocomplete query.
type SuggestRequest struct {
	Query string `json:"query" example:"Tverskaya 11"`
}

// SuggestResponse carries the matched addresses.
type SuggestResponse struct {
	Addresses []*service.Address `json:"addresses"`
}

// SuggestAddress godoc
// @Summary Suggest addresses
// @Description Autocomplete a postal address for a member profile
// @Tags address
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SuggestRequest true "Address query"
// @Success 200 {object} SuggestResponse
// @Failure 400 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /api/address/suggest [post]
func (c *AddressController) SuggestAddress(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := c.responder.Decode(r, &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Query == "" {
		c.responder.Error(w, http.StatusBadRequest, "Query is required")
		return
	}

	addresses, err := c.suggester.Suggest(r.Context(), req.Query)
	if err != nil {
		c.responder.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.responder.Respond(w, http.StatusOK, SuggestResponse{Addresses: addresses})
}
