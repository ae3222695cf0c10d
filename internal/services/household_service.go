package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"strings"
	"time"

	"homestock/internal/caching"
	"homestock/internal/common"
	"homestock/internal/models"
	"homestock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeRetries  = 5
	inviteCacheTTL     = 24 * time.Hour
)

type HouseholdService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Household, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Household, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Household, error)
	Join(ctx context.Context, inviteCode string, userID uuid.UUID) (*models.Household, error)
}

type householdService struct {
	householdRepo repositories.HouseholdRepository
	cacheSvc      caching.CacheService
}

func NewHouseholdService(householdRepo repositories.HouseholdRepository, cacheSvc caching.CacheService) HouseholdService {
	return &householdService{
		householdRepo: householdRepo,
		cacheSvc:      cacheSvc,
	}
}

// Create validates the household name, generates an invite code and inserts
// the household together with the owner membership. Invite code collisions
// against the unique index are retried with a fresh code.
func (s *householdService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Household, error) {
	name = strings.TrimSpace(name)

	verr := common.NewValidationError()
	if name == "" {
		verr.Add("name", "Household name is required")
	} else if len(name) < 2 {
		verr.Add("name", "Household name must be at least 2 characters")
	} else if len(name) > 255 {
		verr.Add("name", "Household name cannot exceed 255 characters")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		household := &models.Household{
			ID:         uuid.New(),
			Name:       name,
			InviteCode: code,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err = s.householdRepo.CreateWithOwner(ctx, household, ownerID)
		if err == nil {
			household.Members = []*models.HouseholdMember{{
				UserID:      ownerID,
				HouseholdID: household.ID,
				Role:        models.RoleOwner,
				JoinedAt:    now,
			}}
			return household, nil
		}
		if repositories.IsUniqueViolation(err, "invite_code") {
			continue
		}
		return nil, err
	}
	return nil, common.ErrInviteCodeExhausted
}

func (s *householdService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Household, error) {
	households, err := s.householdRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(households) == 0 {
		return []*models.Household{}, nil
	}

	ids := make([]uuid.UUID, len(households))
	for i, h := range households {
		ids[i] = h.ID
	}
	members, err := s.householdRepo.MembersOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	attachMembers(households, members)
	return households, nil
}

// Get returns the household only when userID is a member. A household that
// does not exist and one the caller cannot see produce the same error.
func (s *householdService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Household, error) {
	household, err := s.householdRepo.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	members, err := s.householdRepo.MembersOf(ctx, []uuid.UUID{household.ID})
	if err != nil {
		return nil, err
	}
	household.Members = members
	return household, nil
}

// Join resolves an invite code (exact-case match) and adds userID as a
// member. Codes never change after creation, so positive lookups are cached.
func (s *householdService) Join(ctx context.Context, inviteCode string, userID uuid.UUID) (*models.Household, error) {
	household, err := s.resolveInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	isMember, err := s.householdRepo.IsMember(ctx, household.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, common.ErrAlreadyMember
	}

	member := &models.HouseholdMember{
		UserID:      userID,
		HouseholdID: household.ID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.householdRepo.AddMember(ctx, member); err != nil {
		// Two parallel joins with the same code race past the membership
		// check; the composite primary key turns the loser into this error.
		if repositories.IsUniqueViolation(err, "") {
			return nil, common.ErrAlreadyMember
		}
		return nil, err
	}
	return household, nil
}

func (s *householdService) resolveInviteCode(ctx context.Context, code string) (*models.Household, error) {
	if cached, err := s.cacheSvc.GetHouseholdByInvite(ctx, code); err != nil {
		log.Printf("WARN: invite code cache lookup failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	household, err := s.householdRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if err := s.cacheSvc.SetHouseholdByInvite(ctx, code, household, inviteCacheTTL); err != nil {
		log.Printf("WARN: invite code cache store failed: %v", err)
	}
	return household, nil
}

func attachMembers(households []*models.Household, members []*models.HouseholdMember) {
	byHousehold := make(map[uuid.UUID][]*models.HouseholdMember)
	for _, m := range members {
		byHousehold[m.HouseholdID] = append(byHousehold[m.HouseholdID], m)
	}
	for _, h := range households {
		h.Members = byHousehold[h.ID]
	}
}

func generateInviteCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(inviteCodeAlphabet)))
	code := make([]byte, models.InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
