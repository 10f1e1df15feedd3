package repository

import (
	"context"

	"roomfoodfinder/internal/domain/entity"
)

type ReviewRepository interface {
	// Create inserts a review. A second review for the same (listing, user)
	// pair fails with a conflict error from the unique index.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByListing(ctx context.Context, listingID string) ([]*entity.Review, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
