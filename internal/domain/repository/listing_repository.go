package repository

import (
	"context"

	"roomfoodfinder/internal/domain/entity"
)

// PublicListingCap bounds the candidate set scanned by the proximity filter.
// Queries never scan the full collection; this is a documented scaling limit.
const PublicListingCap = 500

// ListingFilter restricts the public listing query.
type ListingFilter struct {
	Type      string
	Published *bool
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error

	// ListPublic returns listings matching the filter, newest first, capped at
	// PublicListingCap documents.
	ListPublic(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error)

	// SetRating writes the derived rating fields. Passing nil for both unsets
	// them, marking the listing as unrated.
	SetRating(ctx context.Context, id string, average *float64, count *int) error

	Count(ctx context.Context) (int64, error)
}
