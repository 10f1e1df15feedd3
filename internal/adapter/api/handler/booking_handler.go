package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/usecase"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/response"
)

type BookingHandler struct {
	bookingUseCase *usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{bookingUseCase: bookingUseCase}
}

type createBookingRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
}

func (h *BookingHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("fromDate must be a date", err))
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("toDate must be a date", err))
	}

	booking, err := h.bookingUseCase.Create(c.Request().Context(), user, usecase.CreateBookingInput{
		ListingID: req.ListingID,
		FromDate:  fromDate,
		ToDate:    toDate,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, booking)
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	bookings, err := h.bookingUseCase.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, bookings)
}

func (h *BookingHandler) ListRequests(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	requests, err := h.bookingUseCase.ListRequests(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

type respondBookingRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

func (h *BookingHandler) Respond(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	var req respondBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	booking, err := h.bookingUseCase.Respond(c.Request().Context(), user, c.Param("id"), *req.Approve)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	booking, err := h.bookingUseCase.Cancel(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
