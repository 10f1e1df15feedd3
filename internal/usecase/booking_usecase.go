package usecase

import (
	"context"
	"time"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/logger"
)

type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type CreateBookingInput struct {
	ListingID string
	FromDate  *time.Time
	ToDate    *time.Time
}

// Create submits a booking request against an existing listing. Self-booking
// is rejected here regardless of what the client enforces. Overlapping date
// ranges on the same listing are deliberately not checked.
func (uc *BookingUseCase) Create(ctx context.Context, requester *entity.User, input CreateBookingInput) (*entity.Booking, error) {
	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == requester.ID {
		return nil, errors.BadRequest("You cannot book your own listing", nil)
	}

	booking := &entity.Booking{
		ListingID: listing.ID,
		UserID:    requester.ID,
		FromDate:  input.FromDate,
		ToDate:    input.ToDate,
		Status:    entity.BookingRequested,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Respond approves or rejects a requested booking. Only the owner of the
// referenced listing (or an admin) may respond. The transition is a single
// conditional update, so two concurrent responses cannot both succeed: the
// loser sees zero matched documents and gets a conflict.
func (uc *BookingUseCase) Respond(ctx context.Context, actor *entity.User, bookingID string, approve bool) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		// The listing is gone; only an admin can still act on the orphaned booking.
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		if actor.Role != entity.RoleAdmin {
			return nil, errors.Forbidden("Not allowed", nil)
		}
	} else if !actor.CanManage(listing.OwnerID) {
		return nil, errors.Forbidden("Not allowed", nil)
	}

	to := entity.BookingApproved
	if !approve {
		to = entity.BookingRejected
	}

	ok, err := uc.bookingRepo.UpdateStatusWhere(ctx, bookingID, []entity.BookingStatus{entity.BookingRequested}, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Conflict("Booking has already been responded to", nil)
	}

	booking.Status = to
	return booking, nil
}

// Cancel moves a requested or approved booking to cancelled. Only the
// requester may cancel; cancelling a rejected or already cancelled booking is
// a conflict, not a no-op.
func (uc *BookingUseCase) Cancel(ctx context.Context, actor *entity.User, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.ID {
		return nil, errors.Forbidden("Not allowed", nil)
	}

	ok, err := uc.bookingRepo.UpdateStatusWhere(ctx, bookingID,
		[]entity.BookingStatus{entity.BookingRequested, entity.BookingApproved},
		entity.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Conflict("Booking can no longer be cancelled", nil)
	}

	booking.Status = entity.BookingCancelled
	return booking, nil
}

// ListMine returns the caller's bookings, newest first, each joined with its
// listing for display. Deleted listings come back as absent.
func (uc *BookingUseCase) ListMine(ctx context.Context, userID string) ([]*entity.BookingDetail, error) {
	bookings, err := uc.bookingRepo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*entity.BookingDetail, len(bookings))
	for i, b := range bookings {
		details[i] = &entity.BookingDetail{Booking: b}
		if listing, err := uc.listingRepo.GetByID(ctx, b.ListingID); err == nil {
			details[i].ListingDetail = listing
		}
	}
	return details, nil
}

// ListRequests returns bookings made against the caller's listings, newest
// first, with the listing and the requester's identity joined in.
func (uc *BookingUseCase) ListRequests(ctx context.Context, ownerID string) ([]*entity.BookingDetail, error) {
	listings, err := uc.listingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Listing, len(listings))
	ids := make([]string, len(listings))
	for i, l := range listings {
		byID[l.ID] = l
		ids[i] = l.ID
	}

	bookings, err := uc.bookingRepo.ListByListingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*entity.BookingDetail, len(bookings))
	for i, b := range bookings {
		details[i] = &entity.BookingDetail{Booking: b, ListingDetail: byID[b.ListingID]}
		requester, err := uc.userRepo.GetByID(ctx, b.UserID)
		if err != nil {
			logger.Debug("booking %s requester %s not resolvable: %v", b.ID, b.UserID, err)
			continue
		}
		requester.PasswordHash = ""
		details[i].Requester = requester
	}
	return details, nil
}
