package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/eventdocs/internal/domain"
)

// RecordsRepo reads the event, organizer, participant and collaborator rows
// the document composer works from.
type RecordsRepo struct {
	db DB
}

func (r *RecordsRepo) With(db DB) *RecordsRepo {
	cp := *r
	cp.db = db
	return &cp
}

// GetEventSnapshot retrieves an event together with its organizer, if any.
//
// Nullable text columns come back as empty strings. The date column is
// returned in its text form and parsed later by the composer.
func (r *RecordsRepo) GetEventSnapshot(ctx context.Context, eventID uuid.UUID) (*domain.EventSnapshot, error) {
	const op = "postgresrepo.RecordsRepo.GetEventSnapshot"

	var (
		snap  = domain.EventSnapshot{ID: eventID}
		orgID *string
		org   domain.OrganizerRecord
	)

	err := r.db.QueryRow(ctx,
		`SELECT e.name,
		        COALESCE(e.date::text, ''),
		        COALESCE(e.banner_image_url, ''),
		        o.id::text,
		        COALESCE(o.company_name, ''),
		        COALESCE(o.name, ''),
		        COALESCE(o.logo_url, ''),
		        COALESCE(o.banner_image_url, '')
		   FROM events e
		   LEFT JOIN organizers o ON o.id = e.organizer_id
		  WHERE e.id = $1`,
		eventID,
	).Scan(
		&snap.Event.Name,
		&snap.Event.Date,
		&snap.Event.BannerImageURL,
		&orgID,
		&org.CompanyName,
		&org.Name,
		&org.LogoURL,
		&org.BannerImageURL,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if orgID != nil {
		id, err := uuid.Parse(*orgID)
		if err != nil {
			return nil, fmt.Errorf("%s: organizer id: %w", op, err)
		}
		snap.OrganizerID = &id
		snap.Organizer = &org
	}

	return &snap, nil
}

// GetParticipant retrieves a registration of the given event.
func (r *RecordsRepo) GetParticipant(ctx context.Context, eventID, participantID uuid.UUID) (*domain.ParticipantRecord, error) {
	const op = "postgresrepo.RecordsRepo.GetParticipant"

	var p domain.ParticipantRecord
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(name, ''), COALESCE(email, '')
		   FROM registrations
		  WHERE id = $1 AND event_id = $2`,
		participantID, eventID,
	).Scan(&p.Name, &p.Email)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

// GetCollaborator retrieves a staff member of the given event.
func (r *RecordsRepo) GetCollaborator(ctx context.Context, eventID, collaboratorID uuid.UUID) (*domain.CollaboratorRecord, error) {
	const op = "postgresrepo.RecordsRepo.GetCollaborator"

	var c domain.CollaboratorRecord
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(name, ''), COALESCE(role, '')
		   FROM collaborators
		  WHERE id = $1 AND event_id = $2`,
		collaboratorID, eventID,
	).Scan(&c.Name, &c.Role)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &c, nil
}
