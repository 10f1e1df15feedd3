package router

import (
	"roomfoodfinder/internal/adapter/api/handler"
	"roomfoodfinder/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Public routes
	e.GET("/api/reviews/listing/:listingId", reviewHandler.ListByListing)

	// Protected routes; authorship of :id is enforced in the use case
	reviews := e.Group("/api/reviews")
	reviews.Use(authMiddleware.Authenticate)

	reviews.POST("", reviewHandler.Create)
	reviews.PUT("/:id", reviewHandler.Update)
	reviews.DELETE("/:id", reviewHandler.Delete)
}
