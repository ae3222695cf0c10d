package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity from the auth provider. The row is a local cache
// of the identity claims seen at first sight, not an editable profile.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
