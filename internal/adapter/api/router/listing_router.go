package router

import (
	"roomfoodfinder/internal/adapter/api/handler"
	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Public routes
	e.GET("/api/listings", listingHandler.List)
	e.GET("/api/listings/:id", listingHandler.Get)

	// Provider routes; ownership of :id is enforced in the use case
	provider := e.Group("/api/listings")
	provider.Use(authMiddleware.Authenticate)
	provider.Use(authMiddleware.RequireRole(entity.RoleProvider, entity.RoleAdmin))

	provider.GET("/provider", listingHandler.ListMine)
	provider.POST("", listingHandler.Create)
	provider.PUT("/:id", listingHandler.Update)
	provider.DELETE("/:id", listingHandler.Delete)
}
