package repository

import "github.com/google/uuid"

// UUIDGenerator generates random UUIDv4 identifiers. Entity ids are
// caller-generated at creation time, never assigned by the backend.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new random id.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
