package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/infrastructure/ratelimit"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/logger"
	"roomfoodfinder/pkg/response"
)

// authLimiter throttles credential endpoints per client IP: 5 attempts,
// refilling one per 12 seconds.
var authLimiter = ratelimit.NewLimiter(5, 1, 12*time.Second)

// AuthRateLimit guards register/login against brute forcing.
func AuthRateLimit() echo.MiddlewareFunc {
	return RateLimit(authLimiter, "auth")
}

// RateLimit returns middleware enforcing the given limiter keyed by client IP.
func RateLimit(limiter *ratelimit.Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, wait := limiter.Allow(c.RealIP(), action)
			if !allowed {
				logger.Warn("rate limit hit: ip=%s action=%s wait=%v", c.RealIP(), action, wait)
				message := fmt.Sprintf("Too many requests, retry in %d seconds", int(wait.Seconds())+1)
				return response.Error(c, errors.TooManyRequests(message, nil))
			}
			return next(c)
		}
	}
}
