package router

import (
	"roomfoodfinder/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/", healthHandler.CheckHealth)
	e.GET("/health", healthHandler.CheckHealth)
}
