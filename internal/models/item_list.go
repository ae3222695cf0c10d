package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemList is a named grouping of items within a household. Deleting a list
// detaches its items (list_id set to null) rather than cascading.
type ItemList struct {
	ID          uuid.UUID `json:"id" db:"id"`
	HouseholdID uuid.UUID `json:"householdId" db:"household_id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
