package router

import (
	"roomfoodfinder/internal/adapter/api/handler"
	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireRole(entity.RoleAdmin))

	admin.GET("/stats", adminHandler.Stats)

	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)

	admin.GET("/listings", adminHandler.ListListings)
	admin.DELETE("/listings/:id", adminHandler.DeleteListing)

	admin.GET("/bookings", adminHandler.ListBookings)
	admin.DELETE("/bookings/:id", adminHandler.DeleteBooking)

	admin.GET("/reviews", adminHandler.ListReviews)
	admin.DELETE("/reviews/:id", adminHandler.DeleteReview)
}
