// Package withdrawals wraps the admin withdrawal endpoints. The surface
// mirrors deposits minus the conversion guard; withdrawals have no converted
// state.
package withdrawals

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	str "kampomido/pkg/string"
)

// Service is the withdrawals façade.
type Service struct {
	client *api.Client
}

// NewService creates the withdrawals façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists withdrawals, applying only the filters that are set.
func (s *Service) GetAll(ctx context.Context, filters ListFilters) ([]Withdrawal, error) {
	query := api.NewFilters().
		Set("status", filters.Status).
		SetInt("page", filters.Page).
		SetInt("limit", filters.Limit).
		Values()

	resp, err := s.client.Get(ctx, "/admin/withdrawals/get-all", query)
	if err != nil {
		return nil, err
	}
	return envelope.List[Withdrawal](resp.Body, "withdrawals")
}

// GetByID fetches one withdrawal.
func (s *Service) GetByID(ctx context.Context, id string) (Withdrawal, error) {
	resp, err := s.client.Get(ctx, "/admin/withdrawals/view/"+id, nil)
	if err != nil {
		return Withdrawal{}, err
	}
	return envelope.One[Withdrawal](resp.Body, "withdrawal")
}

// Approve marks a pending withdrawal approved.
func (s *Service) Approve(ctx context.Context, id string) (Withdrawal, error) {
	resp, err := s.client.Put(ctx, "/admin/withdrawals/approve/"+id, nil)
	if err != nil {
		return Withdrawal{}, err
	}
	return envelope.One[Withdrawal](resp.Body, "withdrawal")
}

// Reject marks a pending withdrawal rejected.
func (s *Service) Reject(ctx context.Context, id, reason string) (Withdrawal, error) {
	str.TrimStrings(&reason)
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	resp, err := s.client.Put(ctx, "/admin/withdrawals/reject/"+id, body)
	if err != nil {
		return Withdrawal{}, err
	}
	return envelope.One[Withdrawal](resp.Body, "withdrawal")
}

// Delete removes a withdrawal.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/admin/withdrawals/delete/"+id)
	return err
}
