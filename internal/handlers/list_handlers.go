package handlers

import (
	"net/http"

	"homestock/internal/common"
	"homestock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListHandlers handles item list HTTP requests
type ListHandlers struct {
	listService services.ItemListService
}

func NewListHandlers(listService services.ItemListService) *ListHandlers {
	return &ListHandlers{listService: listService}
}

// ListLists godoc
// @Summary List item lists across the caller's households
// @Tags lists
// @Produce json
// @Param householdId query string false "Narrow to one household"
// @Success 200 {array} models.ItemList
// @Security BearerAuth
// @Router /inventory/lists [get]
func (h *ListHandlers) ListLists(c echo.Context) error {
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

	lists, err := h.listService.List(ctx, userID, householdID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

// CreateList godoc
// @Summary Create an item list in a household the caller belongs to
// @Tags lists
// @Accept json
// @Produce json
// @Param request body services.CreateListRequest true "list"
// @Success 201 {object} models.ItemList
// @Failure 400 {object} common.ErrorResponse
// @Failure 403 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/lists [post]
func (h *ListHandlers) CreateList(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req services.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	list, err := h.listService.Create(ctx, userID, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

// DeleteList godoc
// @Summary Delete an item list, detaching its items
// @Tags lists
// @Param id path string true "List ID"
// @Success 204
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /inventory/lists/{id} [delete]
func (h *ListHandlers) DeleteList(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.ErrNotFound)
	}

	if err := h.listService.Delete(ctx, listID, userID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
