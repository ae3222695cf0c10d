package handlers

import (
	"net/http"

	"homestock/internal/common"
	"homestock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HouseholdHandlers handles household and membership HTTP requests
type HouseholdHandlers struct {
	householdService services.HouseholdService
}

// NewHouseholdHandlers creates a new household handlers instance
func NewHouseholdHandlers(householdService services.HouseholdService) *HouseholdHandlers {
	return &HouseholdHandlers{householdService: householdService}
}

// CreateHouseholdRequest represents the household creation request payload
type CreateHouseholdRequest struct {
	Name string `json:"name"`
}

// ListMyHouseholds godoc
// @Summary List the caller's households
// @Tags household
// @Produce json
// @Success 200 {array} models.Household
// @Failure 401 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /household [get]
func (h *HouseholdHandlers) ListMyHouseholds(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	households, err := h.householdService.ListForUser(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, households)
}

// GetHousehold godoc
// @Summary Get one household the caller belongs to
// @Tags household
// @Produce json
// @Param id path string true "Household ID"
// @Success 200 {object} models.Household
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /household/{id} [get]
func (h *HouseholdHandlers) GetHousehold(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable ID cannot name an accessible household.
		return common.RespondError(c, common.ErrNotFound)
	}

	household, err := h.householdService.Get(ctx, householdID, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, household)
}

// CreateHousehold godoc
// @Summary Create a household; the caller becomes its owner
// @Tags household
// @Accept json
// @Produce json
// @Param request body CreateHouseholdRequest true "household"
// @Success 201 {object} models.Household
// @Failure 400 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /household [post]
func (h *HouseholdHandlers) CreateHousehold(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req CreateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	household, err := h.householdService.Create(ctx, userID, req.Name)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, household)
}

// JoinHousehold godoc
// @Summary Join a household by invite code
// @Tags household
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} models.Household
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /household/join/{code} [post]
func (h *HouseholdHandlers) JoinHousehold(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	code := c.Param("code")
	if code == "" {
		return common.RespondError(c, common.ErrNotFound)
	}

	household, err := h.householdService.Join(ctx, code, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, household)
}
