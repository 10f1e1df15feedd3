package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/internal/infrastructure/mongodb"
	"roomfoodfinder/pkg/errors"
)

type mongoReviewRepository struct {
	col *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{col: db.Collection(mongodb.ReviewsCollection)}
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Listing   string             `bson:"listing"`
	User      string             `bson:"user"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
}

func (d *reviewDoc) toEntity() *entity.Review {
	return &entity.Review{
		ID:        d.ID.Hex(),
		ListingID: d.Listing,
		UserID:    d.User,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt.Time(),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	doc := &reviewDoc{
		ID:        primitive.NewObjectID(),
		Listing:   review.ListingID,
		User:      review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: primitive.NewDateTimeFromTime(review.CreatedAt),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("Review already exists for this listing and user", err)
		}
		return errors.Internal("Failed to create review", err)
	}
	review.ID = doc.ID.Hex()
	return nil
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFound("Review", err)
	}

	var doc reviewDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoReviewRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findReviews(ctx, bson.M{"listing": listingID}, opts)
}

func (r *mongoReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	reviews, err := r.findReviews(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	oid, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return errors.NotFound("Review", err)
	}

	update := bson.M{"$set": bson.M{
		"rating":  review.Rating,
		"comment": review.Comment,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NotFound("Review", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Internal("Failed to delete review", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *mongoReviewRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Internal("Failed to count reviews", err)
	}
	return total, nil
}

func (r *mongoReviewRepository) findReviews(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*entity.Review, error) {
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}
	defer cursor.Close(ctx)

	var reviews []*entity.Review
	for cursor.Next(ctx) {
		var doc reviewDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Internal("Failed to decode review", err)
		}
		reviews = append(reviews, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate reviews", err)
	}
	return reviews, nil
}
