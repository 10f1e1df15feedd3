package usecase

import (
	"context"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/pkg/errors"
)

type AdminUseCase struct {
	userRepo      repository.UserRepository
	listingRepo   repository.ListingRepository
	bookingRepo   repository.BookingRepository
	reviewRepo    repository.ReviewRepository
	reviewUseCase *ReviewUseCase
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	bookingRepo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
	reviewUseCase *ReviewUseCase,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:      userRepo,
		listingRepo:   listingRepo,
		bookingRepo:   bookingRepo,
		reviewRepo:    reviewRepo,
		reviewUseCase: reviewUseCase,
	}
}

type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalListings   int64 `json:"totalListings"`
	TotalBookings   int64 `json:"totalBookings"`
	TotalReviews    int64 `json:"totalReviews"`
	ActiveProviders int64 `json:"activeProviders"`
	ActiveUsers     int64 `json:"activeUsers"`
}

func (uc *AdminUseCase) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalUsers, err = uc.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalListings, err = uc.listingRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = uc.bookingRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalReviews, err = uc.reviewRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProviders, err = uc.userRepo.CountByRole(ctx, entity.RoleProvider); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = uc.userRepo.CountByRole(ctx, entity.RoleUser); err != nil {
		return nil, err
	}
	return stats, nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users, total, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i, u := range users {
		users[i] = sanitized(u)
	}
	return users, total, nil
}

func (uc *AdminUseCase) ListListings(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListAll(ctx, limit, offset)
}

func (uc *AdminUseCase) ListBookings(ctx context.Context, limit, offset int) ([]*entity.Booking, int64, error) {
	return uc.bookingRepo.ListAll(ctx, limit, offset)
}

func (uc *AdminUseCase) ListReviews(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListAll(ctx, limit, offset)
}

// Deletes are hard and never cascade: documents referencing the removed one
// keep their dangling id and are resolved as absent at read time.

func (uc *AdminUseCase) DeleteUser(ctx context.Context, id string) error {
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AdminUseCase) DeleteListing(ctx context.Context, id string) error {
	return uc.listingRepo.Delete(ctx, id)
}

func (uc *AdminUseCase) DeleteBooking(ctx context.Context, id string) error {
	return uc.bookingRepo.Delete(ctx, id)
}

// DeleteReview removes a review and resynchronizes the parent listing's
// derived rating, same as an author-initiated delete.
func (uc *AdminUseCase) DeleteReview(ctx context.Context, id string) error {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.reviewUseCase.syncListingRating(ctx, review.ListingID)
}

// UpdateUserRole is the only pathway that mutates a user's role.
func (uc *AdminUseCase) UpdateUserRole(ctx context.Context, id string, role string) (*entity.User, error) {
	parsed, ok := entity.ParseRole(role)
	if !ok {
		return nil, errors.BadRequest("Invalid role", nil)
	}
	user, err := uc.userRepo.UpdateRole(ctx, id, parsed)
	if err != nil {
		return nil, err
	}
	return sanitized(user), nil
}
