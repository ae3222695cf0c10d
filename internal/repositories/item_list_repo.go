package repositories

import (
	"context"

	"homestock/internal/models"

	"github.com/google/uuid"
)

type ItemListRepository interface {
	Create(ctx context.Context, list *models.ItemList) error
	GetScoped(ctx context.Context, id, userID uuid.UUID) (*models.ItemList, error)
	ListScoped(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.ItemList, error)
	// DeleteDetachingItems nulls list_id on the list's items and removes the
	// list in one transaction, so items survive their list.
	DeleteDetachingItems(ctx context.Context, id uuid.UUID) error
}

type itemListRepo struct {
	db DB
}

func NewItemListRepo(db DB) ItemListRepository {
	return &itemListRepo{db: db}
}

func (r *itemListRepo) Create(ctx context.Context, list *models.ItemList) error {
	query := `
		INSERT INTO lists (id, household_id, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, list.ID, list.HouseholdID, list.Name, list.Type, list.CreatedAt, list.UpdatedAt)
	return err
}

func (r *itemListRepo) GetScoped(ctx context.Context, id, userID uuid.UUID) (*models.ItemList, error) {
	l := &models.ItemList{}
	query := `
		SELECT l.id, l.household_id, l.name, l.type, l.created_at, l.updated_at
		FROM lists l
		JOIN household_users hu ON hu.household_id = l.household_id
		WHERE l.id = $1 AND hu.user_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&l.ID, &l.HouseholdID, &l.Name, &l.Type, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *itemListRepo) ListScoped(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.ItemList, error) {
	query := `
		SELECT l.id, l.household_id, l.name, l.type, l.created_at, l.updated_at
		FROM lists l
		JOIN household_users hu ON hu.household_id = l.household_id
		WHERE hu.user_id = $1
	`
	args := []any{userID}
	if householdID != nil {
		query += ` AND l.household_id = $2`
		args = append(args, *householdID)
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []*models.ItemList{}
	for rows.Next() {
		l := &models.ItemList{}
		if err := rows.Scan(&l.ID, &l.HouseholdID, &l.Name, &l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *itemListRepo) DeleteDetachingItems(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE items SET list_id = NULL WHERE list_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
