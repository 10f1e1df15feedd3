package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/pkg/errors"
)

// In-memory repository fakes backing the use case tests. They mirror the
// datastore contracts: unique email, unique (listing, user) review pair, and
// the conditional booking status update.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.Conflict("User exists", nil)
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.NotFound("User", nil)
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memListingRepo struct {
	mu       sync.Mutex
	seq      int
	listings map[string]*entity.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: map[string]*entity.Listing{}}
}

func (r *memListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	listing.ID = fmt.Sprintf("listing-%d", r.seq)
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *memListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.listings[listing.ID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	// Derived rating fields are owned by SetRating, not by listing updates.
	cp := *listing
	cp.AverageRating = stored.AverageRating
	cp.ReviewCount = stored.ReviewCount
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *memListingRepo) ListPublic(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if filter.Published != nil && l.Published != *filter.Published {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > repository.PublicListingCap {
		out = out[:repository.PublicListingCap]
	}
	return out, nil
}

func (r *memListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Listing{}
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memListingRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		cp := *l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *memListingRepo) SetRating(ctx context.Context, id string, average *float64, count *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	l.AverageRating = average
	l.ReviewCount = count
	return nil
}

func (r *memListingRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.listings)), nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*entity.Booking{}}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	booking.ID = fmt.Sprintf("booking-%d", r.seq)
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.NotFound("Booking", nil)
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) ListByRequester(ctx context.Context, userID string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBookingRepo) ListByListingIDs(ctx context.Context, listingIDs []string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range listingIDs {
		wanted[id] = true
	}
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		if wanted[b.ListingID] {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBookingRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return errors.NotFound("Booking", nil)
	}
	delete(r.bookings, id)
	return nil
}

func (r *memBookingRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *memBookingRepo) UpdateStatusWhere(ctx context.Context, id string, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	seq     int
	reviews map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]*entity.Review{}}
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ListingID == review.ListingID && existing.UserID == review.UserID {
			return errors.Conflict("Review already exists for this listing and user", nil)
		}
	}
	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	cp := *rv
	return &cp, nil
}

func (r *memReviewRepo) ListByListing(ctx context.Context, listingID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Review{}
	for _, rv := range r.reviews {
		if rv.ListingID == listingID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memReviewRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		cp := *rv
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memReviewRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.reviews)), nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

var _ repository.UserRepository = (*memUserRepo)(nil)
var _ repository.ListingRepository = (*memListingRepo)(nil)
var _ repository.BookingRepository = (*memBookingRepo)(nil)
var _ repository.ReviewRepository = (*memReviewRepo)(nil)
