package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestock/internal/common"
	"homestock/internal/models"
	"homestock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserSyncService provisions a local user row for an identity the auth
// provider has already verified. It runs on every authenticated request, so
// it must stay idempotent and race-safe.
type UserSyncService interface {
	EnsureUserExists(ctx context.Context, id, email, name string) (*models.User, error)
}

type userSyncService struct {
	userRepo repositories.UserRepository
}

func NewUserSyncService(userRepo repositories.UserRepository) UserSyncService {
	return &userSyncService{userRepo: userRepo}
}

// EnsureUserExists returns the stored user for id, creating it on first
// sight. An existing row is returned unchanged: the local record caches
// identity, it does not reconcile email or name drift. Two requests racing
// on the same never-seen identity both succeed with a single stored row.
func (s *userSyncService) EnsureUserExists(ctx context.Context, id, email, name string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrInvalidIdentity
	}

	existing, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if name == "" {
		name = localPart(email)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent request inserted the same identity first. That row
		// wins; re-fetch it rather than surfacing the constraint failure.
		if repositories.IsUniqueViolation(err, "") {
			return s.userRepo.GetByID(ctx, userID)
		}
		return nil, err
	}
	return user, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
