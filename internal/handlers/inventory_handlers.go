package handlers

import (
	"net/http"

	"homestock/internal/common"
	"homestock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory item HTTP requests
type InventoryHandlers struct {
	itemService services.ItemService
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(itemService services.ItemService) *InventoryHandlers {
	return &InventoryHandlers{itemService: itemService}
}

// ListItems godoc
// @Summary List items across the caller's households
// @Tags inventory
// @Produce json
// @Param householdId query string false "Narrow to one household"
// @Success 200 {array} models.InventoryItem
// @Failure 401 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items [get]
func (h *InventoryHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var householdID *uuid.UUID
	if raw := c.QueryParam("householdId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid householdId format")
		}
		householdID = &id
	}

	items, err := h.itemService.List(ctx, userID, householdID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get one item in a household the caller belongs to
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items/{id} [get]
func (h *InventoryHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.ErrNotFound)
	}

	item, err := h.itemService.Get(ctx, itemID, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary Create an item in a household the caller belongs to
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body services.CreateItemRequest true "item"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {object} common.ErrorResponse
// @Failure 403 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items [post]
func (h *InventoryHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req services.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item, err := h.itemService.Create(ctx, userID, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Patch an item; omitted fields keep their stored value
// @Tags inventory
// @Accept json
// @Param id path string true "Item ID"
// @Param request body services.UpdateItemRequest true "patch"
// @Success 204
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items/{id} [put]
func (h *InventoryHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.ErrNotFound)
	}

	var patch services.UpdateItemRequest
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.itemService.Update(ctx, itemID, userID, &patch); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteItem godoc
// @Summary Delete an item in a household the caller belongs to
// @Tags inventory
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items/{id} [delete]
func (h *InventoryHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.ErrNotFound)
	}

	if err := h.itemService.Delete(ctx, itemID, userID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadItemPhoto godoc
// @Summary Upload a photo for an item
// @Tags inventory
// @Accept mpfd
// @Produce json
// @Param id path string true "Item ID"
// @Param photo formData file true "photo file"
// @Success 200 {object} map[string]string
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/items/{id}/photo [post]
func (h *InventoryHandlers) UploadItemPhoto(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.ErrNotFound)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Photo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read photo file")
	}
	defer file.Close()

	url, err := h.itemService.UploadPhoto(ctx, itemID, userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"photoUrl": url})
}
