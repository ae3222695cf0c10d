package middleware

import (
	"log"
	"net/http"
	"time"

	"homestock/internal/caching"

	"github.com/labstack/echo/v4"
)

// RateLimit throttles requests per client IP using the Redis counter. When
// Redis is unreachable the request is allowed through.
func RateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), c.RealIP(), limit, window)
			if err != nil {
				log.Printf("WARN: rate limit check failed: %v", err)
				return next(c)
			}
			if limited {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}
