package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"homestock/internal/common"
	"homestock/internal/models"
	"homestock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateItemRequest carries the fields a member may set when creating an
// item. OwnerID is deliberately not checked against household membership: an
// item can be attributed to someone outside the household (a child, a pet).
type CreateItemRequest struct {
	HouseholdID uuid.UUID  `json:"householdId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Value       *float64   `json:"value"`
	Location    *string    `json:"location"`
	Destination *string    `json:"destination"`
	OwnerID     *uuid.UUID `json:"ownerId"`
	Tags        []string   `json:"tags"`
	ListID      *uuid.UUID `json:"listId"`
}

// UpdateItemRequest is a patch: nil fields keep their stored value. There is
// no way to clear a field back to null through this shape.
type UpdateItemRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Value       *float64   `json:"value"`
	PhotoURL    *string    `json:"photoUrl"`
	Location    *string    `json:"location"`
	Destination *string    `json:"destination"`
	OwnerID     *uuid.UUID `json:"ownerId"`
	Tags        []string   `json:"tags"`
	ListID      *uuid.UUID `json:"listId"`
}

type ItemService interface {
	List(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.InventoryItem, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.InventoryItem, error)
	Create(ctx context.Context, userID uuid.UUID, req *CreateItemRequest) (*models.InventoryItem, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch *UpdateItemRequest) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	UploadPhoto(ctx context.Context, id, userID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
}

type itemService struct {
	itemRepo      repositories.ItemRepository
	householdRepo repositories.HouseholdRepository
	minioSvc      MinioService
	photoBucket   string
}

func NewItemService(itemRepo repositories.ItemRepository, householdRepo repositories.HouseholdRepository, minioSvc MinioService, photoBucket string) ItemService {
	return &itemService{
		itemRepo:      itemRepo,
		householdRepo: householdRepo,
		minioSvc:      minioSvc,
		photoBucket:   photoBucket,
	}
}

// List returns items across every household the caller belongs to, newest
// first. Narrowing to a household the caller is not a member of yields an
// empty result, not an error: the filter applies inside the scoped set.
func (s *itemService) List(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.InventoryItem, error) {
	return s.itemRepo.ListScoped(ctx, userID, householdID)
}

func (s *itemService) Get(ctx context.Context, id, userID uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.itemRepo.GetScoped(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Create(ctx context.Context, userID uuid.UUID, req *CreateItemRequest) (*models.InventoryItem, error) {
	verr := common.NewValidationError()
	validateItemName(verr, req.Name, true)
	validateItemFields(verr, req.Description, req.Value, req.Location, req.Destination)
	if verr.HasErrors() {
		return nil, verr
	}

	isMember, err := s.householdRepo.IsMember(ctx, req.HouseholdID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, common.ErrForbidden
	}

	now := time.Now().UTC()
	item := &models.InventoryItem{
		ID:          uuid.New(),
		HouseholdID: req.HouseholdID,
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Location:    req.Location,
		Destination: req.Destination,
		OwnerID:     req.OwnerID,
		Tags:        req.Tags,
		ListID:      req.ListID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies the non-nil patch fields to the stored item. updated_at is
// refreshed even when no field changes value.
func (s *itemService) Update(ctx context.Context, id, userID uuid.UUID, patch *UpdateItemRequest) error {
	item, err := s.itemRepo.GetScoped(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Value != nil {
		item.Value = patch.Value
	}
	if patch.PhotoURL != nil {
		item.PhotoURL = patch.PhotoURL
	}
	if patch.Location != nil {
		item.Location = patch.Location
	}
	if patch.Destination != nil {
		item.Destination = patch.Destination
	}
	if patch.OwnerID != nil {
		item.OwnerID = patch.OwnerID
	}
	if patch.Tags != nil {
		item.Tags = patch.Tags
	}
	if patch.ListID != nil {
		item.ListID = patch.ListID
	}

	verr := common.NewValidationError()
	validateItemName(verr, item.Name, true)
	validateItemFields(verr, item.Description, item.Value, item.Location, item.Destination)
	if verr.HasErrors() {
		return verr
	}

	return s.itemRepo.Update(ctx, item)
}

func (s *itemService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	deleted, err := s.itemRepo.DeleteScoped(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound
	}
	return nil
}

// UploadPhoto stores the file under the item's household prefix and records
// the resulting public URL on the item.
func (s *itemService) UploadPhoto(ctx context.Context, id, userID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	item, err := s.itemRepo.GetScoped(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", err
	}

	if err := s.minioSvc.EnsureBucketExists(ctx, s.photoBucket); err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("items/%s/%s/%s", item.HouseholdID, item.ID, filename)
	if err := s.minioSvc.UploadObject(ctx, s.photoBucket, objectKey, reader, size, contentType); err != nil {
		return "", err
	}

	url := s.minioSvc.ObjectURL(s.photoBucket, objectKey)
	if err := s.itemRepo.SetPhotoURL(ctx, item.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

func validateItemName(verr *common.ValidationError, name string, required bool) {
	if name == "" {
		if required {
			verr.Add("name", "Item name is required")
		}
		return
	}
	if len(name) > 255 {
		verr.Add("name", "Item name cannot exceed 255 characters")
	}
}

func validateItemFields(verr *common.ValidationError, description *string, value *float64, location, destination *string) {
	if description != nil && len(*description) > 1000 {
		verr.Add("description", "Description cannot exceed 1000 characters")
	}
	if value != nil && *value < 0 {
		verr.Add("value", "Value must be greater than or equal to 0")
	}
	if location != nil && len(*location) > 255 {
		verr.Add("location", "Location cannot exceed 255 characters")
	}
	if destination != nil && *destination != "" && !models.ValidDestination(*destination) {
		verr.Add("destination", "Destination must be one of: Undecided, Take, Sell, Donate, Trash")
	}
}
