package repositories

import (
	"context"
	"encoding/json"

	"homestock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	// GetScoped returns the item only when userID is a member of the owning
	// household; absent and inaccessible rows look identical to callers.
	GetScoped(ctx context.Context, id, userID uuid.UUID) (*models.InventoryItem, error)
	ListScoped(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	DeleteScoped(ctx context.Context, id, userID uuid.UUID) (bool, error)
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepo(db DB) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `i.id, i.household_id, i.name, i.description, i.value, i.photo_url, i.location, i.destination, i.owner_id, i.tags, i.list_id, i.created_at, i.updated_at`

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		return nil, nil
	}
	return json.Marshal(tags)
}

func scanItem(row pgx.Row) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	var rawTags []byte
	err := row.Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Description, &item.Value,
		&item.PhotoURL, &item.Location, &item.Destination, &item.OwnerID,
		&rawTags, &item.ListID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &item.Tags); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	tags, err := encodeTags(item.Tags)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO items (id, household_id, name, description, value, photo_url, location, destination, owner_id, tags, list_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.db.Exec(ctx, query,
		item.ID, item.HouseholdID, item.Name, item.Description, item.Value,
		item.PhotoURL, item.Location, item.Destination, item.OwnerID,
		tags, item.ListID, item.CreatedAt, item.UpdatedAt,
	)
	return err
}

func (r *itemRepo) GetScoped(ctx context.Context, id, userID uuid.UUID) (*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN household_users hu ON hu.household_id = i.household_id
		WHERE i.id = $1 AND hu.user_id = $2
	`
	return scanItem(r.db.QueryRow(ctx, query, id, userID))
}

func (r *itemRepo) ListScoped(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN household_users hu ON hu.household_id = i.household_id
		WHERE hu.user_id = $1
	`
	args := []any{userID}
	if householdID != nil {
		query += ` AND i.household_id = $2`
		args = append(args, *householdID)
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	tags, err := encodeTags(item.Tags)
	if err != nil {
		return err
	}
	query := `
		UPDATE items
		SET name = $1, description = $2, value = $3, photo_url = $4, location = $5,
			destination = $6, owner_id = $7, tags = $8, list_id = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err = r.db.Exec(ctx, query,
		item.Name, item.Description, item.Value, item.PhotoURL, item.Location,
		item.Destination, item.OwnerID, tags, item.ListID, item.ID,
	)
	return err
}

func (r *itemRepo) DeleteScoped(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM items i
		USING household_users hu
		WHERE hu.household_id = i.household_id AND i.id = $1 AND hu.user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *itemRepo) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE items SET photo_url = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, url, id)
	return err
}

func (r *itemRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
