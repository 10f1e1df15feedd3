package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct{}

var healthHandlerInstance = &HealthHandler{}

func GetHealthHandler() *HealthHandler {
	return healthHandlerInstance
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Room & Food Finder API",
		"time":    time.Now().Format(time.RFC3339),
	})
}
