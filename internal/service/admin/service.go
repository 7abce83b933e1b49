package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
)

// Invalidator drops cached copies of an event record.
type Invalidator interface {
	InvalidateEvent(ctx context.Context, eventID string) error
}

// Publisher tells other instances that an event record changed.
type Publisher interface {
	PublishEventChanged(ctx context.Context, eventID string) error
}

type Service struct {
	cache  Invalidator
	pubsub Publisher
	logger *slog.Logger
}

func New(cache Invalidator, pubsub Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cache:  cache,
		pubsub: pubsub,
		logger: logger,
	}
}

// EventChanged is called by the platform after an event or its organizer was
// edited. The cached record is dropped right away and the change is
// broadcast so every instance drops its copy too.
func (s *Service) EventChanged(ctx context.Context, eventID uuid.UUID) error {
	const op = "service.admin.EventChanged"

	id := eventID.String()

	if err := s.cache.InvalidateEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: invalidate: %w", op, err)
	}

	if s.pubsub != nil {
		if err := s.pubsub.PublishEventChanged(ctx, id); err != nil {
			return fmt.Errorf("%s: publish: %w", op, err)
		}
	}

	return nil
}

// HandleEventChanged is the subscriber side of EventChanged.
func (s *Service) HandleEventChanged(ctx context.Context, eventID string) {
	if err := s.cache.InvalidateEvent(ctx, eventID); err != nil {
		s.logger.Warn("failed to invalidate event record", "event_id", eventID, "error", err)
		return
	}

	s.logger.Debug("event record invalidated", "event_id", eventID)
}

var (
	_ Invalidator = (*redisrepo.Cache)(nil)
	_ Publisher   = (*redisrepo.EventsPubSub)(nil)
)
