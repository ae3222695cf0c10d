package repositories

import (
	"context"

	"homestock/internal/models"

	"github.com/google/uuid"
)

type HouseholdRepository interface {
	// CreateWithOwner inserts the household and its owner membership in one
	// transaction. A household without an owner row is never observable.
	CreateWithOwner(ctx context.Context, household *models.Household, ownerID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Household, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Household, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Household, error)
	IsMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, member *models.HouseholdMember) error
	MembersOf(ctx context.Context, householdIDs []uuid.UUID) ([]*models.HouseholdMember, error)
}

type householdRepo struct {
	db DB
}

func NewHouseholdRepo(db DB) HouseholdRepository {
	return &householdRepo{db: db}
}

func (r *householdRepo) CreateWithOwner(ctx context.Context, household *models.Household, ownerID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	householdQuery := `
		INSERT INTO households (id, name, invite_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.Exec(ctx, householdQuery, household.ID, household.Name, household.InviteCode, household.CreatedAt, household.UpdatedAt)
	if err != nil {
		return err
	}

	memberQuery := `
		INSERT INTO household_users (user_id, household_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.Exec(ctx, memberQuery, ownerID, household.ID, models.RoleOwner, household.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *householdRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Household, error) {
	query := `
		SELECT h.id, h.name, h.invite_code, h.created_at, h.updated_at
		FROM households h
		JOIN household_users hu ON hu.household_id = h.id
		WHERE hu.user_id = $1
		ORDER BY h.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var households []*models.Household
	for rows.Next() {
		h := &models.Household{}
		if err := rows.Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

func (r *householdRepo) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Household, error) {
	h := &models.Household{}
	query := `
		SELECT h.id, h.name, h.invite_code, h.created_at, h.updated_at
		FROM households h
		JOIN household_users hu ON hu.household_id = h.id
		WHERE h.id = $1 AND hu.user_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *householdRepo) GetByInviteCode(ctx context.Context, code string) (*models.Household, error) {
	h := &models.Household{}
	query := `
		SELECT id, name, invite_code, created_at, updated_at
		FROM households
		WHERE invite_code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *householdRepo) IsMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM household_users WHERE household_id = $1 AND user_id = $2
		)
	`
	err := r.db.QueryRow(ctx, query, householdID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *householdRepo) AddMember(ctx context.Context, member *models.HouseholdMember) error {
	query := `
		INSERT INTO household_users (user_id, household_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, member.UserID, member.HouseholdID, member.Role, member.JoinedAt)
	return err
}

func (r *householdRepo) MembersOf(ctx context.Context, householdIDs []uuid.UUID) ([]*models.HouseholdMember, error) {
	if len(householdIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT hu.user_id, hu.household_id, u.name, u.email, hu.role, hu.joined_at
		FROM household_users hu
		JOIN users u ON u.id = hu.user_id
		WHERE hu.household_id = ANY($1)
		ORDER BY hu.joined_at ASC
	`
	rows, err := r.db.Query(ctx, query, householdIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.HouseholdMember
	for rows.Next() {
		m := &models.HouseholdMember{}
		if err := rows.Scan(&m.UserID, &m.HouseholdID, &m.Name, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
