package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// InviteCodeLength is the number of characters in a household invite code.
const InviteCodeLength = 8

type Household struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	InviteCode string    `json:"inviteCode" db:"invite_code"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Members is populated by explicit join queries, never lazily.
	Members []*HouseholdMember `json:"members,omitempty"`
}

// HouseholdMember is a flattened membership row joined with the user it
// belongs to. One row per (user, household) pair.
type HouseholdMember struct {
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	HouseholdID uuid.UUID `json:"householdId" db:"household_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Role        string    `json:"role" db:"role"`
	JoinedAt    time.Time `json:"joinedAt" db:"joined_at"`
}
