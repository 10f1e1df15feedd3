package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/internal/infrastructure/auth"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/response"
)

// Context keys populated by Authenticate.
const (
	ContextKeyUID  = "uid"
	ContextKeyUser = "user"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// Authenticate resolves the bearer token to a user record and attaches it to
// the request context with the password hash stripped.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		uid, err := m.jwtManager.Verify(token)
		if err != nil {
			return response.Error(c, err)
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			// A token for a deleted account is treated as no credential at all.
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}
		user.PasswordHash = ""

		c.Set(ContextKeyUID, user.ID)
		c.Set(ContextKeyUser, user)
		return next(c)
	}
}

// RequireRole gates a route to the given roles. It runs after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return response.Error(c, errors.Forbidden("Insufficient role", nil))
		}
	}
}

// CurrentUser fetches the authenticated user from the request context.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*entity.User)
	return user, ok
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}
