package usecase

import (
	"context"
	"time"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/pkg/errors"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{listingRepo: listingRepo}
}

type CreateListingInput struct {
	Title       string
	Description string
	Address     string
	Price       *float64
	Lat         *float64
	Lng         *float64
	Type        string
	Tags        []string
	Amenities   []string
	Images      []string
}

func (uc *ListingUseCase) Create(ctx context.Context, owner *entity.User, input CreateListingInput) (*entity.Listing, error) {
	if input.Title == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}

	listingType := input.Type
	if listingType == "" {
		listingType = entity.ListingTypeRoom
	}

	listing := &entity.Listing{
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Price:       input.Price,
		Images:      input.Images,
		OwnerID:     owner.ID,
		HostName:    owner.Name,
		Lat:         input.Lat,
		Lng:         input.Lng,
		Type:        listingType,
		Tags:        input.Tags,
		Amenities:   input.Amenities,
		Published:   true,
		CreatedAt:   time.Now().UTC(),
	}
	if len(input.Images) > 0 {
		listing.ImageURL = input.Images[0]
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

type UpdateListingInput struct {
	Title       *string
	Description *string
	Address     *string
	Price       *float64
	ClearPrice  bool
	Lat         *float64
	Lng         *float64
	Type        *string
	Tags        []string
	Amenities   []string
	NewImages   []string
	Published   *bool
}

// Update applies a partial edit. New images append to the existing sequence;
// the derived rating fields are never written here.
func (uc *ListingUseCase) Update(ctx context.Context, actor *entity.User, id string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.OwnerID) {
		return nil, errors.Forbidden("Not allowed", nil)
	}

	if input.Title != nil && *input.Title != "" {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Address != nil {
		listing.Address = *input.Address
	}
	if input.ClearPrice {
		listing.Price = nil
	} else if input.Price != nil {
		listing.Price = input.Price
	}
	if input.Lat != nil {
		listing.Lat = input.Lat
	}
	if input.Lng != nil {
		listing.Lng = input.Lng
	}
	if input.Type != nil {
		listing.Type = *input.Type
	}
	if input.Tags != nil {
		listing.Tags = input.Tags
	}
	if input.Amenities != nil {
		listing.Amenities = input.Amenities
	}
	if input.Published != nil {
		listing.Published = *input.Published
	}
	if len(input.NewImages) > 0 {
		listing.Images = append(listing.Images, input.NewImages...)
		if listing.ImageURL == "" {
			listing.ImageURL = input.NewImages[0]
		}
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete hard-deletes a listing. Bookings and reviews referencing it are left
// dangling on purpose; joined views resolve them as absent.
func (uc *ListingUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(listing.OwnerID) {
		return errors.Forbidden("Not allowed", nil)
	}
	return uc.listingRepo.Delete(ctx, id)
}

func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByOwner(ctx, ownerID)
}

type ListListingsInput struct {
	Type      string
	Published *bool
	Lat       *float64
	Lng       *float64
	RadiusKm  *float64
}

// List returns published listings matching the filter, newest first. When a
// query point is present the bounded candidate set is re-ordered nearest first
// and each result carries its computed distance.
func (uc *ListingUseCase) List(ctx context.Context, input ListListingsInput) ([]*ListingResult, error) {
	published := true
	filter := repository.ListingFilter{Type: input.Type, Published: &published}
	if input.Published != nil {
		filter.Published = input.Published
	}

	candidates, err := uc.listingRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, err
	}

	if input.Lat != nil && input.Lng != nil {
		radius := DefaultRadiusKm
		if input.RadiusKm != nil {
			radius = *input.RadiusKm
		}
		return filterByProximity(candidates, *input.Lat, *input.Lng, radius), nil
	}

	results := make([]*ListingResult, len(candidates))
	for i, l := range candidates {
		results[i] = &ListingResult{Listing: l}
	}
	return results, nil
}
