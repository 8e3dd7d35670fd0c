// Package reports wraps the admin reporting endpoints.
package reports

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
)

// Service is the reports façade.
type Service struct {
	client *api.Client
}

// NewService creates the reports façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Ledger fetches the transaction ledger, sending only the filters that are
// set.
func (s *Service) Ledger(ctx context.Context, filters LedgerFilters) ([]EntryViewModel, error) {
	query := api.NewFilters().
		Set("from", filters.From).
		Set("to", filters.To).
		Set("status", filters.Status).
		SetInt("page", filters.Page).
		SetInt("limit", filters.Limit).
		Values()

	resp, err := s.client.Get(ctx, "/admin/reports/ledger", query)
	if err != nil {
		return nil, err
	}

	records, err := envelope.List[Entry](resp.Body, "ledger")
	if err != nil {
		return nil, err
	}
	return EntryViewModels(records), nil
}
