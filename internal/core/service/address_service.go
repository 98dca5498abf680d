package service

import (
	"context"
	"net/url"
	"time"

	"github.com/ekomobile/dadata/v2/api/suggest"
	"github.com/ekomobile/dadata/v2/client"

	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
)

// AddressSuggester autocompletes postal addresses for member profiles.
type AddressSuggester interface {
	Suggest(ctx context.Context, query string) ([]*Address, error)
}

// Address is one suggested postal address.
type Address struct {
	City   string `json:"city" example:"Moscow"`
	Street string `json:"street" example:"Tverskaya"`
	House  string `json:"house" example:"11"`
	Lat    string `json:"lat" example:"55.7558"`
	Lon    string `json:"lon" example:"37.6173"`
}

// AddressService resolves suggestions through the dadata suggestion API.
type AddressService struct {
	api *suggest.Api
}

func NewAddressService(apiKey, secretKey string) *AddressService {
	endpointURL, _ := url.Parse("https://suggestions.dadata.ru/suggestions/api/4_1/rs/")
	creds := client.Credentials{
		ApiKeyValue:    apiKey,
		SecretKeyValue: secretKey,
	}
	api := suggest.Api{
		Client: client.NewClient(endpointURL, client.WithCredentialProvider(&creds)),
	}
	return &AddressService{api: &api}
}

// Suggest returns suggestions for a free-form address query. Entries without
// a resolved city and street are dropped.
func (s *AddressService) Suggest(ctx context.Context, query string) ([]*Address, error) {
	start := time.Now()
	rawRes, err := s.api.Address(ctx, &suggest.RequestParams{Query: query})
	metrics.ObserveExternalAPIRequest("AddressSuggest", time.Since(start))
	if err != nil {
		return nil, err
	}

	var res []*Address
	for _, r := range rawRes {
		if r.Data.City == "" || r.Data.Street == "" {
			continue
		}
		res = append(res, &Address{
			City:   r.Data.City,
			Street: r.Data.Street,
			House:  r.Data.House,
			Lat:    r.Data.GeoLat,
			Lon:    r.Data.GeoLon,
		})
	}
	return res, nil
}
