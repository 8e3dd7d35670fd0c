// Package goldrate wraps the gold-rate endpoints. The rate drives deposit
// revaluation server-side; the client only reads and (for admins) sets it.
package goldrate

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	dErrors "kampomido/pkg/domain-errors"
)

// Rate is the wire record. Older endpoints use "rate", newer "ratePerGram".
type Rate struct {
	RatePerGram float64 `json:"ratePerGram"`
	Rate        float64 `json:"rate"`
	UpdatedAt   string  `json:"updatedAt"`
	UpdatedBy   string  `json:"updatedBy"`
}

// PerGram resolves the effective rate regardless of which key carried it.
func (r Rate) PerGram() float64 {
	if r.RatePerGram != 0 {
		return r.RatePerGram
	}
	return r.Rate
}

// Service is the gold-rate façade.
type Service struct {
	client *api.Client
}

// NewService creates the gold-rate façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Current fetches the live rate.
func (s *Service) Current(ctx context.Context) (Rate, error) {
	resp, err := s.client.Get(ctx, "/admin/gold-rate", nil)
	if err != nil {
		return Rate{}, err
	}
	return envelope.One[Rate](resp.Body, "goldRate")
}

// Update sets a new rate per gram.
func (s *Service) Update(ctx context.Context, ratePerGram float64) (Rate, error) {
	if ratePerGram <= 0 {
		return Rate{}, dErrors.NewValidation("validation failed", map[string]string{
			"rate_per_gram": "rate_per_gram must be greater than 0",
		})
	}

	resp, err := s.client.Put(ctx, "/admin/gold-rate", map[string]float64{"ratePerGram": ratePerGram})
	if err != nil {
		return Rate{}, err
	}
	return envelope.One[Rate](resp.Body, "goldRate")
}
