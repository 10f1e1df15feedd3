package router

import (
	"roomfoodfinder/internal/adapter/api/handler"
	"roomfoodfinder/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/auth")
	auth.Use(middleware.AuthRateLimit())

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
}
