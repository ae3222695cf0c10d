package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"homestock/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// nameIdentifierClaim is the WS-Fed subject claim some providers emit in
// place of the bare "sub".
const nameIdentifierClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

// NewJWKSKeyfunc fetches the auth provider's JWKS and keeps it refreshed in
// the background. The returned keyfunc plugs into the JWT middleware.
func NewJWKSKeyfunc(jwksURL string) (jwt.Keyfunc, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("WARN: JWKS refresh failed: %v", err)
		},
	})
	if err != nil {
		return nil, err
	}
	return jwks.Keyfunc, nil
}

// JWTConfig builds the echo-jwt configuration: signature, expiry and claim
// shape are enforced here, identity resolution happens afterwards.
func JWTConfig(kf jwt.Keyfunc) echojwt.Config {
	return echojwt.Config{
		KeyFunc: kf,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// IdentityContext resolves the verified token's claims into a canonical
// identity and stores it in the request context. The subject is read from
// "sub" first, then from the WS-Fed NameIdentifier claim.
func IdentityContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			userID, err := ResolveUserID(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User ID not found in token")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, common.UserEmailKey, email)
			}
			if name, ok := claims["name"].(string); ok {
				ctx = context.WithValue(ctx, common.UserNameKey, name)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// ResolveUserID extracts the canonical user identifier from verified claims.
// It has no side effects and does not verify the token.
func ResolveUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		sub, ok = claims[nameIdentifierClaim].(string)
		if !ok || sub == "" {
			return uuid.Nil, common.ErrUnauthenticated
		}
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, common.ErrUnauthenticated
	}
	return userID, nil
}
