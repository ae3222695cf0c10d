package middleware

import (
	"log"

	"homestock/internal/common"
	"homestock/internal/services"

	"github.com/labstack/echo/v4"
)

// UserSync provisions a local user row for the authenticated identity. It
// runs after IdentityContext on every request. A sync failure is logged and
// the request proceeds: the actual data operation will surface any real
// store problem itself.
func UserSync(userSyncSvc services.UserSyncService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return next(c)
			}
			email, _ := common.GetUserEmailFromContext(ctx)
			if email == "" {
				log.Printf("WARN: authenticated request without email claim, skipping user sync")
				return next(c)
			}
			name, _ := common.GetUserNameFromContext(ctx)

			if _, err := userSyncSvc.EnsureUserExists(ctx, userID.String(), email, name); err != nil {
				log.Printf("ERROR: user sync failed for %s: %v", userID, err)
			}

			return next(c)
		}
	}
}
