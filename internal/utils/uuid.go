package utils

import "github.com/google/uuid"

// UUIDGenerator produces the stable record IDs assigned at creation time.
// UUIDv7 keeps IDs roughly time-ordered, which keeps the ID-sorted vault
// tables close to insertion order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random UUIDv4
// when the system clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
