// Package kyc wraps the admin KYC moderation endpoints.
package kyc

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	str "kampomido/pkg/string"
	"kampomido/pkg/validation"
)

// Service is the KYC façade.
type Service struct {
	client *api.Client
}

// NewService creates the KYC façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists KYC requests, optionally filtered by status.
func (s *Service) GetAll(ctx context.Context, status string) ([]Request, error) {
	query := api.NewFilters().Set("status", status).Values()
	resp, err := s.client.Get(ctx, "/admin/kyc/get-all", query)
	if err != nil {
		return nil, err
	}
	return envelope.List[Request](resp.Body, "kyc")
}

// GetByID fetches one KYC request.
func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	resp, err := s.client.Get(ctx, "/admin/kyc/view/"+id, nil)
	if err != nil {
		return Request{}, err
	}
	return envelope.One[Request](resp.Body, "kyc")
}

// UpdateStatus moderates a KYC request.
func (s *Service) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (Request, error) {
	str.TrimStrings(&update.Status, &update.Remark)
	if err := validation.Validate(update); err != nil {
		return Request{}, err
	}

	resp, err := s.client.Put(ctx, "/admin/kyc/update-status/"+id, update)
	if err != nil {
		return Request{}, err
	}
	return envelope.One[Request](resp.Body, "kyc")
}

// RequestReupload asks the customer to re-submit documents.
func (s *Service) RequestReupload(ctx context.Context, id, reason string) error {
	str.TrimStrings(&reason)
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	_, err := s.client.Post(ctx, "/admin/kyc/request-reupload/"+id, body)
	return err
}
