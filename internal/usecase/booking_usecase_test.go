package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/pkg/errors"
)

type bookingFixture struct {
	uc       *BookingUseCase
	bookings *memBookingRepo
	listings *memListingRepo
	users    *memUserRepo

	owner     *entity.User
	requester *entity.User
	admin     *entity.User
	listing   *entity.Listing
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	users := newMemUserRepo()
	listings := newMemListingRepo()
	bookings := newMemBookingRepo()

	owner := &entity.User{Name: "Host", Email: "host@example.com", Role: entity.RoleProvider}
	requester := &entity.User{Name: "Guest", Email: "guest@example.com", Role: entity.RoleUser}
	admin := &entity.User{Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, requester))
	require.NoError(t, users.Create(ctx, admin))

	listing := &entity.Listing{Title: "Cozy room", OwnerID: owner.ID, Type: entity.ListingTypeRoom, Published: true}
	require.NoError(t, listings.Create(ctx, listing))

	return &bookingFixture{
		uc:        NewBookingUseCase(bookings, listings, users),
		bookings:  bookings,
		listings:  listings,
		users:     users,
		owner:     owner,
		requester: requester,
		admin:     admin,
		listing:   listing,
	}
}

func TestBookingCreate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingRequested, booking.Status)
	assert.Equal(t, f.listing.ID, booking.ListingID)
	assert.Equal(t, f.requester.ID, booking.UserID)
}

func TestBookingCreateSelfBookingRejected(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.uc.Create(context.Background(), f.owner, CreateBookingInput{ListingID: f.listing.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestBookingCreateMissingListing(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.uc.Create(context.Background(), f.requester, CreateBookingInput{ListingID: "listing-999"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestBookingRespondApprove(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	updated, err := f.uc.Respond(ctx, f.owner, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingApproved, updated.Status)

	stored, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingApproved, stored.Status)
}

func TestBookingRespondTwiceConflicts(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	_, err = f.uc.Respond(ctx, f.owner, booking.ID, true)
	require.NoError(t, err)

	// The second response loses the conditional update and must not flip the
	// status again.
	_, err = f.uc.Respond(ctx, f.owner, booking.ID, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingApproved, stored.Status)
}

func TestBookingRespondForbiddenForStranger(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	_, err = f.uc.Respond(ctx, f.requester, booking.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestBookingRespondAdminOverride(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	updated, err := f.uc.Respond(ctx, f.admin, booking.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingRejected, updated.Status)
}

func TestBookingRespondDanglingListing(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)
	require.NoError(t, f.listings.Delete(ctx, f.listing.ID))

	// Ownership is unresolvable once the listing is gone; only an admin may
	// still act on the orphaned booking.
	_, err = f.uc.Respond(ctx, f.owner, booking.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := f.uc.Respond(ctx, f.admin, booking.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingRejected, updated.Status)
}

func TestBookingCancelLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	_, err = f.uc.Respond(ctx, f.owner, booking.ID, true)
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(ctx, f.requester, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, cancelled.Status)

	// Cancelling again is a conflict, not a no-op.
	_, err = f.uc.Cancel(ctx, f.requester, booking.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestBookingCancelRejectedConflicts(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	_, err = f.uc.Respond(ctx, f.owner, booking.ID, false)
	require.NoError(t, err)

	_, err = f.uc.Cancel(ctx, f.requester, booking.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestBookingCancelOnlyRequester(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	_, err = f.uc.Cancel(ctx, f.owner, booking.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestBookingListMineJoinsListing(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	mine, err := f.uc.ListMine(ctx, f.requester.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].ListingDetail)
	assert.Equal(t, f.listing.ID, mine[0].ListingDetail.ID)
}

func TestBookingListMineDanglingListing(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)
	require.NoError(t, f.listings.Delete(ctx, f.listing.ID))

	mine, err := f.uc.ListMine(ctx, f.requester.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].ListingDetail)
	assert.Equal(t, booking.ListingID, mine[0].ListingID)
}

func TestBookingListRequests(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	requests, err := f.uc.ListRequests(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.NotNil(t, requests[0].Requester)
	assert.Equal(t, f.requester.ID, requests[0].Requester.ID)
	assert.Empty(t, requests[0].Requester.PasswordHash)
	require.NotNil(t, requests[0].ListingDetail)
	assert.Equal(t, f.listing.ID, requests[0].ListingDetail.ID)
}

func TestBookingListRequestsEmptyForOtherOwner(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.requester, CreateBookingInput{ListingID: f.listing.ID})
	require.NoError(t, err)

	requests, err := f.uc.ListRequests(ctx, f.requester.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}
