// Package dashboard drives the admin summary panel. It refreshes on a fixed
// interval, collapses concurrent refreshes into one request, and keeps serving
// the last good snapshot while the backend endpoint is failing. Auth failures
// on the summary path never force a logout; the caller's session stays intact
// and the panel simply shows stale data.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	dErrors "kampomido/pkg/domain-errors"
	"kampomido/pkg/platform/circuit"
)

const summaryPath = "/admin/dashboard/summary"

// Service is the dashboard façade.
type Service struct {
	client  *api.Client
	logger  *slog.Logger
	group   singleflight.Group
	breaker *circuit.Breaker

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewService creates the dashboard façade.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		breaker: circuit.New("dashboard-summary",
			circuit.WithFailureThreshold(3),
			circuit.WithSuccessThreshold(1),
		),
	}
}

// Summary returns the current snapshot, fetching when needed. Concurrent
// callers share one in-flight request. When the breaker is open the cached
// snapshot is returned marked stale; with no cache the fetch error surfaces.
func (s *Service) Summary(ctx context.Context) (Snapshot, error) {
	if s.breaker.IsOpen() {
		if cached, ok := s.cached(); ok {
			return Snapshot{Summary: cached.Summary, Stale: true}, nil
		}
	}

	result, err, _ := s.group.Do("summary", func() (any, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		if cached, ok := s.cached(); ok {
			return Snapshot{Summary: cached.Summary, Stale: true}, nil
		}
		return Snapshot{}, err
	}
	return result.(Snapshot), nil
}

// Refresh forces a fetch regardless of breaker state, still deduplicated.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	result, err, _ := s.group.Do("summary", func() (any, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return result.(Snapshot), nil
}

func (s *Service) fetch(ctx context.Context) (Snapshot, error) {
	resp, err := s.client.Get(ctx, summaryPath, nil)
	if err != nil {
		if fallback, opened := s.breaker.RecordFailure(); fallback && opened {
			s.logger.WarnContext(ctx, "dashboard summary circuit opened",
				slog.String("error", err.Error()),
			)
		}
		return Snapshot{}, err
	}

	summary, err := envelope.One[Summary](resp.Body, "summary")
	if err != nil {
		s.breaker.RecordFailure()
		return Snapshot{}, err
	}

	if _, closed := s.breaker.RecordSuccess(); closed {
		s.logger.InfoContext(ctx, "dashboard summary circuit closed")
	}

	snap := Snapshot{Summary: summary}
	s.mu.Lock()
	s.snapshot = &snap
	s.mu.Unlock()
	return snap, nil
}

func (s *Service) cached() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// Poll refreshes the snapshot on the given interval until ctx is cancelled,
// delivering each result to onUpdate. Errors with no cached fallback are
// logged and the loop keeps going; an expired session is not one of the
// conditions that stops it, since the summary path never forces logout.
func (s *Service) Poll(ctx context.Context, interval time.Duration, onUpdate func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap, err := s.Summary(ctx)
		if err != nil {
			if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
				s.logger.WarnContext(ctx, "dashboard poll failed",
					slog.String("error", err.Error()),
				)
			}
		} else if onUpdate != nil {
			onUpdate(snap)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
