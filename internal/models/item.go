package models

import (
	"time"

	"github.com/google/uuid"
)

// Destination values an item may carry.
const (
	DestinationUndecided = "Undecided"
	DestinationTake      = "Take"
	DestinationSell      = "Sell"
	DestinationDonate    = "Donate"
	DestinationTrash     = "Trash"
)

var validDestinations = map[string]bool{
	DestinationUndecided: true,
	DestinationTake:      true,
	DestinationSell:      true,
	DestinationDonate:    true,
	DestinationTrash:     true,
}

// ValidDestination reports whether d is an accepted destination value.
// The empty string is handled by callers (the field is optional).
func ValidDestination(d string) bool {
	return validDestinations[d]
}

// InventoryItem belongs to exactly one household for its entire lifetime.
// Tags are stored as jsonb but surfaced as a typed list.
type InventoryItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	HouseholdID uuid.UUID  `json:"householdId" db:"household_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Value       *float64   `json:"value" db:"value"`
	PhotoURL    *string    `json:"photoUrl" db:"photo_url"`
	Location    *string    `json:"location" db:"location"`
	Destination *string    `json:"destination" db:"destination"`
	OwnerID     *uuid.UUID `json:"ownerId" db:"owner_id"`
	Tags        []string   `json:"tags" db:"tags"`
	ListID      *uuid.UUID `json:"listId" db:"list_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
