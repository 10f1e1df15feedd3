package handler

import (
	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/usecase"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}
	return response.Success(c, user)
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.userUseCase.UpdateProfile(c.Request().Context(), user.ID, usecase.UpdateProfileInput{
		Name: req.Name,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, updated)
}
