package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/pkg/errors"
)

func f64(v float64) *float64 { return &v }

type listingFixture struct {
	uc       *ListingUseCase
	listings *memListingRepo
	owner    *entity.User
	admin    *entity.User
	stranger *entity.User
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	listings := newMemListingRepo()
	return &listingFixture{
		uc:       NewListingUseCase(listings),
		listings: listings,
		owner:    &entity.User{ID: "user-1", Name: "Host", Role: entity.RoleProvider},
		admin:    &entity.User{ID: "user-2", Name: "Admin", Role: entity.RoleAdmin},
		stranger: &entity.User{ID: "user-3", Name: "Other", Role: entity.RoleProvider},
	}
}

func TestListingCreateDefaults(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.uc.Create(context.Background(), f.owner, CreateListingInput{
		Title:  "Back room",
		Images: []string{"http://localhost:8080/uploads/a.jpg", "http://localhost:8080/uploads/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingTypeRoom, listing.Type)
	assert.True(t, listing.Published)
	assert.Equal(t, f.owner.ID, listing.OwnerID)
	assert.Equal(t, f.owner.Name, listing.HostName)
	assert.Equal(t, "http://localhost:8080/uploads/a.jpg", listing.ImageURL)
	assert.Nil(t, listing.AverageRating)
	assert.Nil(t, listing.ReviewCount)
}

func TestListingCreateRequiresTitle(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.uc.Create(context.Background(), f.owner, CreateListingInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListingUpdatePartial(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, f.owner, CreateListingInput{
		Title: "Old title",
		Price: f64(100),
		Tags:  []string{"quiet"},
	})
	require.NoError(t, err)

	title := "New title"
	updated, err := f.uc.Update(ctx, f.owner, listing.ID, UpdateListingInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	// Fields not named by the edit stay put.
	assert.Equal(t, 100.0, *updated.Price)
	assert.Equal(t, []string{"quiet"}, updated.Tags)
}

func TestListingUpdateClearPrice(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Room", Price: f64(50)})
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, f.owner, listing.ID, UpdateListingInput{ClearPrice: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
}

func TestListingUpdateAppendsImages(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Room", Images: []string{"a.jpg"}})
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, f.owner, listing.ID, UpdateListingInput{NewImages: []string{"b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Images)
	assert.Equal(t, "a.jpg", updated.ImageURL)
}

func TestListingUpdateAuthorization(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Room"})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = f.uc.Update(ctx, f.stranger, listing.ID, UpdateListingInput{Title: &title})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Admins may edit anything.
	_, err = f.uc.Update(ctx, f.admin, listing.ID, UpdateListingInput{Title: &title})
	require.NoError(t, err)
}

func TestListingDeleteAuthorization(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Room"})
	require.NoError(t, err)

	err = f.uc.Delete(ctx, f.stranger, listing.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, f.uc.Delete(ctx, f.owner, listing.ID))
	_, err = f.uc.GetByID(ctx, listing.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListingListDefaultsToPublished(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Visible"})
	require.NoError(t, err)

	hidden, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Hidden"})
	require.NoError(t, err)
	published := false
	_, err = f.uc.Update(ctx, f.owner, hidden.ID, UpdateListingInput{Published: &published})
	require.NoError(t, err)

	results, err := f.uc.List(ctx, ListListingsInput{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Visible", results[0].Title)
	assert.Nil(t, results[0].Distance)
}

func TestListingListTypeFilter(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Room", Type: entity.ListingTypeRoom})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Stall", Type: entity.ListingTypeFood})
	require.NoError(t, err)

	results, err := f.uc.List(ctx, ListListingsInput{Type: entity.ListingTypeFood})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Stall", results[0].Title)
}

func TestListingListProximity(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	// Around central Berlin; the third sits ~160 km away in Leipzig.
	near, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Near", Lat: f64(52.52), Lng: f64(13.405)})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Close", Lat: f64(52.53), Lng: f64(13.41)})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Leipzig", Lat: f64(51.34), Lng: f64(12.37)})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.owner, CreateListingInput{Title: "No coords"})
	require.NoError(t, err)

	results, err := f.uc.List(ctx, ListListingsInput{Lat: f64(52.52), Lng: f64(13.405)})
	require.NoError(t, err)

	// Default 20 km radius keeps the two Berlin listings, drops Leipzig and
	// the listing without coordinates, nearest first.
	require.Len(t, results, 2)
	assert.Equal(t, near.ID, results[0].ID)
	assert.Equal(t, "Close", results[1].Title)
	require.NotNil(t, results[0].Distance)
	assert.InDelta(t, 0, *results[0].Distance, 0.001)
	assert.Greater(t, *results[1].Distance, 0.0)
}

func TestListingListProximityCustomRadius(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.owner, CreateListingInput{Title: "Leipzig", Lat: f64(51.34), Lng: f64(12.37)})
	require.NoError(t, err)

	results, err := f.uc.List(ctx, ListListingsInput{Lat: f64(52.52), Lng: f64(13.405), RadiusKm: f64(200)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Leipzig", results[0].Title)
}
