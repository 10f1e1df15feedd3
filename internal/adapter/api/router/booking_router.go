package router

import (
	"roomfoodfinder/internal/adapter/api/handler"
	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupBookingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	bookingHandler := handler.GetBookingHandler()

	bookings := e.Group("/api/bookings")
	bookings.Use(authMiddleware.Authenticate)

	bookings.POST("", bookingHandler.Create)
	bookings.GET("/user", bookingHandler.ListMine)
	bookings.GET("/requests", bookingHandler.ListRequests,
		authMiddleware.RequireRole(entity.RoleProvider, entity.RoleAdmin))
	bookings.POST("/:id/respond", bookingHandler.Respond)
	bookings.POST("/:id/cancel", bookingHandler.Cancel)
}
