// Package notifications wraps the notification feed shared by the admin and
// customer areas. The two areas expose the same operations under different
// base paths, so the façade is parameterized by role at construction.
package notifications

import (
	"context"
	"log/slog"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
)

// Audience selects which notification feed the façade talks to.
type Audience string

const (
	AudienceAdmin    Audience = "admin"
	AudienceCustomer Audience = "customer"
)

func (a Audience) basePath() string {
	if a == AudienceAdmin {
		return "/admin/notifications"
	}
	return "/notifications"
}

// Service is the notifications façade.
type Service struct {
	client *api.Client
	base   string
	logger *slog.Logger
}

// NewService creates a notifications façade for one audience.
func NewService(client *api.Client, audience Audience, logger *slog.Logger) *Service {
	return &Service{client: client, base: audience.basePath(), logger: logger}
}

// GetAll fetches the feed, newest first as the backend orders it.
func (s *Service) GetAll(ctx context.Context) ([]ViewModel, error) {
	resp, err := s.client.Get(ctx, s.base, nil)
	if err != nil {
		return nil, err
	}

	records, err := envelope.List[Notification](resp.Body, "notifications")
	if err != nil {
		return nil, err
	}
	return ViewModels(records), nil
}

// MarkAsRead flags a single notification.
func (s *Service) MarkAsRead(ctx context.Context, id string) error {
	_, err := s.client.Patch(ctx, s.base+"/"+id+"/read", nil)
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "notification marked read", slog.String("id", id))
	return nil
}

// MarkAllAsRead flags the whole feed.
func (s *Service) MarkAllAsRead(ctx context.Context) error {
	_, err := s.client.Patch(ctx, s.base+"/read-all", nil)
	return err
}

// UnreadCount is a convenience over GetAll for badge rendering.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
