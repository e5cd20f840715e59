package utils

import "github.com/google/uuid"

// GenerateID returns a fresh UUID string for primary keys.
func GenerateID() string {
	return uuid.New().String()
}
