package router

import (
	"roomfoodfinder/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e)
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware)
	SetupBookingRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware)
}
