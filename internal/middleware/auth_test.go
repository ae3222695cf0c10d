package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"homestock/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveUserID_Sub(t *testing.T) {
	id := uuid.New()
	claims := jwt.MapClaims{"sub": id.String()}

	got, err := ResolveUserID(claims)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResolveUserID_NameIdentifierFallback(t *testing.T) {
	id := uuid.New()
	claims := jwt.MapClaims{nameIdentifierClaim: id.String()}

	got, err := ResolveUserID(claims)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResolveUserID_SubTakesPrecedence(t *testing.T) {
	subID := uuid.New()
	claims := jwt.MapClaims{
		"sub":               subID.String(),
		nameIdentifierClaim: uuid.New().String(),
	}

	got, err := ResolveUserID(claims)
	assert.NoError(t, err)
	assert.Equal(t, subID, got)
}

func TestResolveUserID_MissingSubject(t *testing.T) {
	_, err := ResolveUserID(jwt.MapClaims{"email": "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestResolveUserID_EmptySubFallsBack(t *testing.T) {
	id := uuid.New()
	claims := jwt.MapClaims{"sub": "", nameIdentifierClaim: id.String()}

	got, err := ResolveUserID(claims)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResolveUserID_NonUUIDSubject(t *testing.T) {
	_, err := ResolveUserID(jwt.MapClaims{"sub": "not-a-uuid"})
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func identityTestContext(t *testing.T, claims jwt.MapClaims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/household", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodRS256, claims))
	}
	return c, rec
}

func TestIdentityContext_PopulatesRequestContext(t *testing.T) {
	id := uuid.New()
	c, _ := identityTestContext(t, jwt.MapClaims{
		"sub":   id.String(),
		"email": "alice@example.com",
		"name":  "Alice",
	})

	var gotID uuid.UUID
	var gotEmail, gotName string
	handler := IdentityContext()(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotID, _ = common.GetUserIDFromContext(ctx)
		gotEmail, _ = common.GetUserEmailFromContext(ctx)
		gotName, _ = common.GetUserNameFromContext(ctx)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	assert.Equal(t, id, gotID)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "Alice", gotName)
}

func TestIdentityContext_OptionalClaimsMayBeAbsent(t *testing.T) {
	id := uuid.New()
	c, _ := identityTestContext(t, jwt.MapClaims{"sub": id.String()})

	handler := IdentityContext()(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotID, ok := common.GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, id, gotID)
		_, ok = common.GetUserEmailFromContext(ctx)
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
}

func TestIdentityContext_MissingToken(t *testing.T) {
	c, _ := identityTestContext(t, nil)

	handler := IdentityContext()(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestIdentityContext_UnresolvableSubject(t *testing.T) {
	c, _ := identityTestContext(t, jwt.MapClaims{"sub": "not-a-uuid"})

	handler := IdentityContext()(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
