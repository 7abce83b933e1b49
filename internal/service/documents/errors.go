package documents

import (
	"errors"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)
