package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/internal/infrastructure/mongodb"
	"roomfoodfinder/pkg/errors"
)

type mongoBookingRepository struct {
	col *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{col: db.Collection(mongodb.BookingsCollection)}
}

type bookingDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Listing   string               `bson:"listing"`
	User      string               `bson:"user"`
	FromDate  *primitive.DateTime  `bson:"fromDate,omitempty"`
	ToDate    *primitive.DateTime  `bson:"toDate,omitempty"`
	Status    entity.BookingStatus `bson:"status"`
	CreatedAt primitive.DateTime   `bson:"createdAt"`
}

func (d *bookingDoc) toEntity() *entity.Booking {
	b := &entity.Booking{
		ID:        d.ID.Hex(),
		ListingID: d.Listing,
		UserID:    d.User,
		Status:    d.Status,
		CreatedAt: d.CreatedAt.Time(),
	}
	if d.FromDate != nil {
		t := d.FromDate.Time()
		b.FromDate = &t
	}
	if d.ToDate != nil {
		t := d.ToDate.Time()
		b.ToDate = &t
	}
	return b
}

func toDateTime(t *time.Time) *primitive.DateTime {
	if t == nil {
		return nil
	}
	dt := primitive.NewDateTimeFromTime(*t)
	return &dt
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	doc := &bookingDoc{
		ID:        primitive.NewObjectID(),
		Listing:   booking.ListingID,
		User:      booking.UserID,
		FromDate:  toDateTime(booking.FromDate),
		ToDate:    toDateTime(booking.ToDate),
		Status:    booking.Status,
		CreatedAt: primitive.NewDateTimeFromTime(booking.CreatedAt),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return errors.Internal("Failed to create booking", err)
	}
	booking.ID = doc.ID.Hex()
	return nil
}

func (r *mongoBookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFound("Booking", err)
	}

	var doc bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Booking", err)
		}
		return nil, errors.Internal("Failed to get booking", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoBookingRepository) ListByRequester(ctx context.Context, userID string) ([]*entity.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findBookings(ctx, bson.M{"user": userID}, opts)
}

func (r *mongoBookingRepository) ListByListingIDs(ctx context.Context, listingIDs []string) ([]*entity.Booking, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findBookings(ctx, bson.M{"listing": bson.M{"$in": listingIDs}}, opts)
}

func (r *mongoBookingRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Booking, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Internal("Failed to count bookings", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	bookings, err := r.findBookings(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatusWhere is the single compare-and-set step of the booking state
// machine: the filter pins the expected current status, so a concurrent
// transition that got there first leaves nothing to match.
func (r *mongoBookingRepository) UpdateStatusWhere(ctx context.Context, id string, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errors.NotFound("Booking", err)
	}

	filter := bson.M{"_id": oid, "status": bson.M{"$in": from}}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return false, errors.Internal("Failed to update booking status", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NotFound("Booking", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Internal("Failed to delete booking", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Booking", nil)
	}
	return nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Internal("Failed to count bookings", err)
	}
	return total, nil
}

func (r *mongoBookingRepository) findBookings(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*entity.Booking, error) {
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Internal("Failed to list bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Internal("Failed to decode booking", err)
		}
		bookings = append(bookings, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate bookings", err)
	}
	return bookings, nil
}
