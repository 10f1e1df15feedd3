package usecase

import (
	"context"
	"math"
	"time"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type CreateReviewInput struct {
	ListingID string
	Rating    int
	Comment   string
}

func (uc *ReviewUseCase) Create(ctx context.Context, reviewer *entity.User, input CreateReviewInput) (*entity.ReviewDetail, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if _, err := uc.listingRepo.GetByID(ctx, input.ListingID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ListingID: input.ListingID,
		UserID:    reviewer.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	// The unique (listing, user) index turns a duplicate into a conflict and
	// leaves the existing review untouched.
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict("You have already reviewed this listing", err)
		}
		return nil, err
	}

	if err := uc.syncListingRating(ctx, input.ListingID); err != nil {
		return nil, err
	}

	return &entity.ReviewDetail{Review: review, Reviewer: sanitized(reviewer)}, nil
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

func (uc *ReviewUseCase) Update(ctx context.Context, actor *entity.User, id string, input UpdateReviewInput) (*entity.ReviewDetail, error) {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(review.UserID) {
		return nil, errors.Forbidden("Not allowed", nil)
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	if err := uc.syncListingRating(ctx, review.ListingID); err != nil {
		return nil, err
	}

	detail := &entity.ReviewDetail{Review: review}
	if author, err := uc.userRepo.GetByID(ctx, review.UserID); err == nil {
		detail.Reviewer = sanitized(author)
	}
	return detail, nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(review.UserID) {
		return errors.Forbidden("Not allowed", nil)
	}

	if err := uc.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.syncListingRating(ctx, review.ListingID)
}

// ListByListing returns a listing's reviews, newest first, each with the
// reviewer's public identity. Deleted reviewers are rendered as absent.
func (uc *ReviewUseCase) ListByListing(ctx context.Context, listingID string) ([]*entity.ReviewDetail, error) {
	reviews, err := uc.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	details := make([]*entity.ReviewDetail, len(reviews))
	for i, r := range reviews {
		details[i] = &entity.ReviewDetail{Review: r}
		if author, err := uc.userRepo.GetByID(ctx, r.UserID); err == nil {
			details[i].Reviewer = sanitized(author)
		}
	}
	return details, nil
}

// syncListingRating recomputes the listing's derived rating fields from the
// full current review set. With no reviews both fields are unset rather than
// zeroed, so an unrated listing stays distinguishable from one rated 0. The
// write pair (review, aggregate) is not transactional; a crash in between
// leaves the aggregate stale until the next review write.
func (uc *ReviewUseCase) syncListingRating(ctx context.Context, listingID string) error {
	reviews, err := uc.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return uc.listingRepo.SetRating(ctx, listingID, nil, nil)
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := roundHalfUp1(float64(total) / float64(len(reviews)))
	count := len(reviews)
	return uc.listingRepo.SetRating(ctx, listingID, &avg, &count)
}

// roundHalfUp1 rounds to one decimal place, halves away from zero upward.
func roundHalfUp1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
