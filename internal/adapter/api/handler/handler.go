package handler

import (
	"roomfoodfinder/internal/infrastructure/storage"
	"roomfoodfinder/internal/usecase"
)

var (
	authHandler    *AuthHandler
	userHandler    *UserHandler
	listingHandler *ListingHandler
	bookingHandler *BookingHandler
	reviewHandler  *ReviewHandler
	adminHandler   *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	bookingUseCase *usecase.BookingUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	bookingHandler = NewBookingHandler(bookingUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
}

// SetupListingHandler wires the listing handler separately because it also
// needs the image store.
func SetupListingHandler(listingUseCase *usecase.ListingUseCase, store *storage.LocalStorage) {
	listingHandler = NewListingHandler(listingUseCase, store)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetBookingHandler() *BookingHandler {
	return bookingHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
