package quizgen

import "github.com/google/uuid"

// IDGenerator supplies fresh question identifiers. Injected so mapping
// stays deterministic under test. IDs must be unique within a batch.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDv4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
