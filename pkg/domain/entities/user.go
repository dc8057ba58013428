package entities

import "github.com/google/uuid"

// User represents an authenticated operator identity
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}
