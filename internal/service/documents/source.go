package documents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/eventdocs/internal/domain"
	"github.com/kirinyoku/eventdocs/internal/repository"
	postgresrepo "github.com/kirinyoku/eventdocs/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
)

// Source loads the records a document is composed from. Lookups that find
// nothing return ErrEventNotFound, ErrParticipantNotFound or
// ErrCollaboratorNotFound.
type Source interface {
	Event(ctx context.Context, eventID uuid.UUID) (domain.EventSnapshot, error)
	Participant(ctx context.Context, eventID, participantID uuid.UUID) (domain.ParticipantRecord, error)
	Collaborator(ctx context.Context, eventID, collaboratorID uuid.UUID) (domain.CollaboratorRecord, error)
}

// StoreSource reads from postgres and keeps event snapshots in redis.
type StoreSource struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	ttl   time.Duration

	// readEvent loads one snapshot from the store; replaced in tests.
	readEvent func(ctx context.Context, eventID uuid.UUID) (domain.EventSnapshot, error)
}

func NewStoreSource(store *postgresrepo.Store, cache *redisrepo.Cache, ttl time.Duration) *StoreSource {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	s := &StoreSource{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
	s.readEvent = s.readEventTx

	return s
}

// Event returns the event snapshot, from redis when cached. Misses and
// failed loads are not cached.
func (s *StoreSource) Event(ctx context.Context, eventID uuid.UUID) (domain.EventSnapshot, error) {
	load := func(ctx context.Context) (domain.EventSnapshot, error) {
		snap, err := s.readEvent(ctx, eventID)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.EventSnapshot{}, ErrEventNotFound
		}
		return snap, err
	}

	if s.cache == nil {
		return load(ctx)
	}

	return redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyEventRecord(eventID.String()),
		s.ttl,
		load,
	)
}

func (s *StoreSource) readEventTx(ctx context.Context, eventID uuid.UUID) (domain.EventSnapshot, error) {
	var snap domain.EventSnapshot

	err := s.store.RunTx(ctx, postgresrepo.ReadOnlySnapshot, func(ctx context.Context, tx postgresrepo.DB) error {
		e, err := s.store.Records().With(tx).GetEventSnapshot(ctx, eventID)
		if err != nil {
			return err
		}
		snap = *e
		return nil
	})

	return snap, err
}

func (s *StoreSource) Participant(ctx context.Context, eventID, participantID uuid.UUID) (domain.ParticipantRecord, error) {
	p, err := s.store.Records().GetParticipant(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ParticipantRecord{}, ErrParticipantNotFound
		}
		return domain.ParticipantRecord{}, err
	}

	return *p, nil
}

func (s *StoreSource) Collaborator(ctx context.Context, eventID, collaboratorID uuid.UUID) (domain.CollaboratorRecord, error) {
	c, err := s.store.Records().GetCollaborator(ctx, eventID, collaboratorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CollaboratorRecord{}, ErrCollaboratorNotFound
		}
		return domain.CollaboratorRecord{}, err
	}

	return *c, nil
}
