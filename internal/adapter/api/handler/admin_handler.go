package handler

import (
	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/usecase"
	"roomfoodfinder/pkg/response"
	"roomfoodfinder/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase}
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminUseCase.GetStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	users, total, err := h.adminUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, users, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ListListings(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	listings, total, err := h.adminUseCase.ListListings(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	bookings, total, err := h.adminUseCase.ListBookings(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, bookings, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ListReviews(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	reviews, total, err := h.adminUseCase.ListReviews(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, reviews, total, params.Page, params.PageSize)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.adminUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"ok": true})
}

func (h *AdminHandler) DeleteListing(c echo.Context) error {
	if err := h.adminUseCase.DeleteListing(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"ok": true})
}

func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	if err := h.adminUseCase.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"ok": true})
}

func (h *AdminHandler) DeleteReview(c echo.Context) error {
	if err := h.adminUseCase.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"ok": true})
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user provider admin"`
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.UpdateUserRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
