// Package customers wraps the admin customer endpoints.
package customers

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	str "kampomido/pkg/string"
	"kampomido/pkg/validation"
)

// Service is the customers façade.
type Service struct {
	client *api.Client
}

// NewService creates the customers façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists all customers.
func (s *Service) GetAll(ctx context.Context) ([]Customer, error) {
	resp, err := s.client.Get(ctx, "/admin/customers/get-all-customers", nil)
	if err != nil {
		return nil, err
	}
	return envelope.List[Customer](resp.Body, "customers")
}

// GetByID fetches one customer.
func (s *Service) GetByID(ctx context.Context, id string) (Customer, error) {
	resp, err := s.client.Get(ctx, "/admin/customers/view-customer/"+id, nil)
	if err != nil {
		return Customer{}, err
	}
	return envelope.One[Customer](resp.Body, "customer")
}

// Add creates a customer for an existing user. Invalid forms never reach the
// network; the field-error map is returned for inline rendering.
func (s *Service) Add(ctx context.Context, form AddForm) (Customer, error) {
	str.TrimStrings(&form.UserID, &form.FullName, &form.Email, &form.Phone)
	if err := validation.Validate(form); err != nil {
		return Customer{}, err
	}

	resp, err := s.client.Post(ctx, "/admin/customers/add-customer", form)
	if err != nil {
		return Customer{}, err
	}
	return envelope.One[Customer](resp.Body, "customer")
}

// Update edits a customer.
func (s *Service) Update(ctx context.Context, id string, form UpdateForm) (Customer, error) {
	str.TrimStrings(&form.FullName, &form.Email, &form.Phone, &form.Status)
	if err := validation.Validate(form); err != nil {
		return Customer{}, err
	}

	resp, err := s.client.Put(ctx, "/admin/customers/update-customer/"+id, form)
	if err != nil {
		return Customer{}, err
	}
	return envelope.One[Customer](resp.Body, "customer")
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/admin/customers/delete-customer/"+id)
	return err
}

// ExistsForUser reports whether the selected user already has a customer
// record. The add-customer page calls this per selection, as a dependent
// request after the users list loads.
func (s *Service) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	resp, err := s.client.Get(ctx, "/admin/customers/check/"+userID, nil)
	if err != nil {
		return false, err
	}
	payload, err := envelope.One[struct {
		Exists bool `json:"exists"`
	}](resp.Body, "customer")
	if err != nil {
		return false, err
	}
	return payload.Exists, nil
}
