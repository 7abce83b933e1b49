package domain

import "github.com/google/uuid"

// EventSnapshot is an event row joined with its organizer, as loaded from the
// platform database.
type EventSnapshot struct {
	ID          uuid.UUID        `json:"id"`
	OrganizerID *uuid.UUID       `json:"organizer_id,omitempty"`
	Event       EventRecord      `json:"event"`
	Organizer   *OrganizerRecord `json:"organizer,omitempty"`
}

// Record returns the event record with its organizer attached.
func (s EventSnapshot) Record() EventRecord {
	rec := s.Event
	rec.Organizer = s.Organizer
	return rec
}
