// Package deposits wraps the admin deposit endpoints.
package deposits

import (
	"context"
	"strings"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	dErrors "kampomido/pkg/domain-errors"
	str "kampomido/pkg/string"
	"kampomido/pkg/validation"
)

// Service is the deposits façade.
type Service struct {
	client *api.Client
}

// NewService creates the deposits façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists deposits, applying only the filters that are set.
func (s *Service) GetAll(ctx context.Context, filters ListFilters) ([]Deposit, error) {
	query := api.NewFilters().
		Set("status", filters.Status).
		SetInt("page", filters.Page).
		SetInt("limit", filters.Limit).
		Values()

	resp, err := s.client.Get(ctx, "/admin/deposits/get-all", query)
	if err != nil {
		return nil, err
	}
	return envelope.List[Deposit](resp.Body, "deposits")
}

// GetByID fetches one deposit.
func (s *Service) GetByID(ctx context.Context, id string) (Deposit, error) {
	resp, err := s.client.Get(ctx, "/admin/deposits/view/"+id, nil)
	if err != nil {
		return Deposit{}, err
	}
	return envelope.One[Deposit](resp.Body, "deposit")
}

// Update edits a deposit.
func (s *Service) Update(ctx context.Context, id string, form UpdateForm) (Deposit, error) {
	str.TrimStrings(&form.PaymentMode, &form.Remark)
	if err := validation.Validate(form); err != nil {
		return Deposit{}, err
	}

	resp, err := s.client.Put(ctx, "/admin/deposits/update/"+id, form)
	if err != nil {
		return Deposit{}, err
	}
	return envelope.One[Deposit](resp.Body, "deposit")
}

// Delete removes a deposit. Converted deposits are rejected locally before
// any DELETE request is issued; the server would refuse them anyway, but the
// guard keeps the row visibly disabled instead of round-tripping to fail.
func (s *Service) Delete(ctx context.Context, id, currentStatus string) error {
	if strings.EqualFold(strings.TrimSpace(currentStatus), StatusConverted) {
		return dErrors.New(dErrors.CodeBusinessRule, "converted deposits cannot be deleted")
	}
	_, err := s.client.Delete(ctx, "/admin/deposits/delete/"+id)
	return err
}

// Approve marks a pending deposit approved.
func (s *Service) Approve(ctx context.Context, id string) (Deposit, error) {
	resp, err := s.client.Put(ctx, "/admin/deposits/approve/"+id, nil)
	if err != nil {
		return Deposit{}, err
	}
	return envelope.One[Deposit](resp.Body, "deposit")
}

// Reject marks a pending deposit rejected.
func (s *Service) Reject(ctx context.Context, id string, reason string) (Deposit, error) {
	str.TrimStrings(&reason)
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	resp, err := s.client.Put(ctx, "/admin/deposits/reject/"+id, body)
	if err != nil {
		return Deposit{}, err
	}
	return envelope.One[Deposit](resp.Body, "deposit")
}
