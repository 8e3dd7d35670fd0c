// Package statements wraps the customer statement endpoints, including the
// binary export download.
package statements

import (
	"context"
	"log/slog"
	"strings"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	dErrors "kampomido/pkg/domain-errors"
)

// Export formats accepted by the download endpoint.
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

// Service is the statements façade.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates the statements façade.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetAll fetches the signed-in customer's statements.
func (s *Service) GetAll(ctx context.Context) ([]ViewModel, error) {
	resp, err := s.client.Get(ctx, "/customer/statements", nil)
	if err != nil {
		return nil, err
	}

	records, err := envelope.List[Statement](resp.Body, "statements")
	if err != nil {
		return nil, err
	}
	return ViewModels(records), nil
}

// Download fetches one statement as a binary export. Only pdf and excel are
// offered by the backend, so anything else is rejected before the request.
func (s *Service) Download(ctx context.Context, id, format string) (*api.Download, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatPDF && format != FormatExcel {
		return nil, dErrors.NewValidation("validation failed", map[string]string{
			"format": "format must be one of: pdf excel",
		})
	}

	query := api.NewFilters().Set("format", format).Values()
	dl, err := s.client.Download(ctx, "/customer/statements/"+id+"/download", query)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "statement downloaded",
		slog.String("id", id),
		slog.String("format", format),
		slog.Int("bytes", len(dl.Data)),
	)
	return dl, nil
}
