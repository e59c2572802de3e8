package internal

import (
	"github.com/google/uuid"
)

// GenerateID generates a unique case record ID
func GenerateID() string {
	return uuid.NewString()
}
