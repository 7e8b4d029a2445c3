package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string. UUIDv7 is time-ordered, so primary keys
// sort by creation time, which the statistics layer relies on for stable
// tie-breaking.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Randomness failure; a v4 still yields a unique key.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
