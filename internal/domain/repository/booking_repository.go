package repository

import (
	"context"

	"roomfoodfinder/internal/domain/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	ListByRequester(ctx context.Context, userID string) ([]*entity.Booking, error)
	ListByListingIDs(ctx context.Context, listingIDs []string) ([]*entity.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Booking, int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// UpdateStatusWhere transitions the booking to the target status only if its
	// current status is one of from, as a single conditional update. It returns
	// false when no document matched, i.e. the booking is gone or already past
	// the expected state.
	UpdateStatusWhere(ctx context.Context, id string, from []entity.BookingStatus, to entity.BookingStatus) (bool, error)
}
