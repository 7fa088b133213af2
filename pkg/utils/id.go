package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewPoolID derives a pool ID from its creation timestamp.
func NewPoolID(t time.Time) string {
	return fmt.Sprintf("pool-%d", t.UnixNano())
}

// GenerateID generates a new UUID v4
func GenerateID() string {
	return uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
