package documents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Renderer turns a composed page into bytes, e.g. a PDF.
type Renderer interface {
	Render(p *document.Page) ([]byte, error)
}

type Service struct {
	source   Source
	composer *document.Composer
	renderer Renderer
	logger   *slog.Logger
}

func New(source Source, composer *document.Composer, renderer Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		source:   source,
		composer: composer,
		renderer: renderer,
		logger:   logger,
	}
}

// Certificate composes the participation certificate of a registration.
//
// Returns:
//   - *document.Page: the composed landscape A4 page.
//   - error: ErrEventNotFound or ErrParticipantNotFound when a record is missing.
func (s *Service) Certificate(ctx context.Context, eventID, participantID uuid.UUID) (*document.Page, error) {
	const op = "service.documents.Certificate"

	snap, p, err := s.loadParticipant(ctx, eventID, participantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.composer.ComposeCertificate(p, snap.Record()), nil
}

// Badge composes the name badge of a registration.
func (s *Service) Badge(ctx context.Context, eventID, participantID uuid.UUID) (*document.Page, error) {
	const op = "service.documents.Badge"

	snap, p, err := s.loadParticipant(ctx, eventID, participantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.composer.ComposeBadge(ctx, p, snap.Record()), nil
}

// CollaboratorBadge composes the staff badge of a collaborator.
func (s *Service) CollaboratorBadge(ctx context.Context, eventID, collaboratorID uuid.UUID) (*document.Page, error) {
	const op = "service.documents.CollaboratorBadge"

	var (
		snap   domain.EventSnapshot
		collab domain.CollaboratorRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.source.Event(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		collab, err = s.source.Collaborator(gCtx, eventID, collaboratorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.composer.ComposeCollaboratorBadge(ctx, collab, snap.Organizer, snap.Record()), nil
}

// Render produces the PDF bytes of a composed page.
func (s *Service) Render(p *document.Page) ([]byte, error) {
	const op = "service.documents.Render"

	b, err := s.renderer.Render(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Debug("document rendered", "name", p.Name, "bytes", len(b))

	return b, nil
}

func (s *Service) loadParticipant(
	ctx context.Context,
	eventID, participantID uuid.UUID,
) (domain.EventSnapshot, domain.ParticipantRecord, error) {
	var (
		snap domain.EventSnapshot
		p    domain.ParticipantRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.source.Event(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		p, err = s.source.Participant(gCtx, eventID, participantID)
		return err
	})

	return snap, p, g.Wait()
}
