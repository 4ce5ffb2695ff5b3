package common

import (
	"github.com/google/uuid"
)

// SessionID identifies one bridged client connection
type SessionID string

// IsNil returns if SessionID is nil
func (id SessionID) IsNil() bool {
	return id == ""
}

// GenSessionID generates a new SessionID
func GenSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// RuntimeEntityID is the entity id used on the client protocol side
type RuntimeEntityID uint64
