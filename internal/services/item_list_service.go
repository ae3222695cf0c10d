package services

import (
	"context"
	"errors"
	"time"

	"homestock/internal/common"
	"homestock/internal/models"
	"homestock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateListRequest struct {
	HouseholdID uuid.UUID `json:"householdId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
}

type ItemListService interface {
	List(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.ItemList, error)
	Create(ctx context.Context, userID uuid.UUID, req *CreateListRequest) (*models.ItemList, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type itemListService struct {
	listRepo      repositories.ItemListRepository
	householdRepo repositories.HouseholdRepository
}

func NewItemListService(listRepo repositories.ItemListRepository, householdRepo repositories.HouseholdRepository) ItemListService {
	return &itemListService{
		listRepo:      listRepo,
		householdRepo: householdRepo,
	}
}

func (s *itemListService) List(ctx context.Context, userID uuid.UUID, householdID *uuid.UUID) ([]*models.ItemList, error) {
	return s.listRepo.ListScoped(ctx, userID, householdID)
}

func (s *itemListService) Create(ctx context.Context, userID uuid.UUID, req *CreateListRequest) (*models.ItemList, error) {
	verr := common.NewValidationError()
	if req.Name == "" {
		verr.Add("name", "List name is required")
	} else if len(req.Name) > 255 {
		verr.Add("name", "List name cannot exceed 255 characters")
	}
	if req.Type == "" {
		verr.Add("type", "List type is required")
	} else if len(req.Type) > 50 {
		verr.Add("type", "List type cannot exceed 50 characters")
	}
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
	list := &models.ItemList{
		ID:          uuid.New(),
		HouseholdID: req.HouseholdID,
		Name:        req.Name,
		Type:        req.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the list and detaches its items. Absent and inaccessible
// lists fail the same way.
func (s *itemListService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.listRepo.GetScoped(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return s.listRepo.DeleteDetachingItems(ctx, id)
}
