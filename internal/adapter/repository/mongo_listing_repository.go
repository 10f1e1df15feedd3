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

type mongoListingRepository struct {
	col *mongo.Collection
}

func NewMongoListingRepository(db *mongo.Database) repository.ListingRepository {
	return &mongoListingRepository{col: db.Collection(mongodb.ListingsCollection)}
}

type listingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Address       string             `bson:"address"`
	Price         *float64           `bson:"price,omitempty"`
	Images        []string           `bson:"images"`
	ImageURL      string             `bson:"imageUrl,omitempty"`
	Owner         string             `bson:"owner"`
	HostName      string             `bson:"hostName,omitempty"`
	Lat           *float64           `bson:"lat,omitempty"`
	Lng           *float64           `bson:"lng,omitempty"`
	Type          string             `bson:"type"`
	Tags          []string           `bson:"tags"`
	Amenities     []string           `bson:"amenities"`
	Published     bool               `bson:"published"`
	AverageRating *float64           `bson:"averageRating,omitempty"`
	ReviewCount   *int               `bson:"reviewCount,omitempty"`
	CreatedAt     primitive.DateTime `bson:"createdAt"`
}

func listingToDoc(l *entity.Listing) *listingDoc {
	return &listingDoc{
		Title:         l.Title,
		Description:   l.Description,
		Address:       l.Address,
		Price:         l.Price,
		Images:        l.Images,
		ImageURL:      l.ImageURL,
		Owner:         l.OwnerID,
		HostName:      l.HostName,
		Lat:           l.Lat,
		Lng:           l.Lng,
		Type:          l.Type,
		Tags:          l.Tags,
		Amenities:     l.Amenities,
		Published:     l.Published,
		AverageRating: l.AverageRating,
		ReviewCount:   l.ReviewCount,
		CreatedAt:     primitive.NewDateTimeFromTime(l.CreatedAt),
	}
}

func (d *listingDoc) toEntity() *entity.Listing {
	return &entity.Listing{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.Address,
		Price:         d.Price,
		Images:        d.Images,
		ImageURL:      d.ImageURL,
		OwnerID:       d.Owner,
		HostName:      d.HostName,
		Lat:           d.Lat,
		Lng:           d.Lng,
		Type:          d.Type,
		Tags:          d.Tags,
		Amenities:     d.Amenities,
		Published:     d.Published,
		AverageRating: d.AverageRating,
		ReviewCount:   d.ReviewCount,
		CreatedAt:     d.CreatedAt.Time(),
	}
}

func (r *mongoListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	doc := listingToDoc(listing)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	listing.ID = doc.ID.Hex()
	return nil
}

func (r *mongoListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	var doc listingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}
	return doc.toEntity(), nil
}

// Update rewrites the editable fields. The derived rating fields are left out
// of the update document entirely; only SetRating touches them.
func (r *mongoListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	oid, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return errors.NotFound("Listing", err)
	}

	set := bson.M{
		"title":       listing.Title,
		"description": listing.Description,
		"address":     listing.Address,
		"images":      listing.Images,
		"imageUrl":    listing.ImageURL,
		"hostName":    listing.HostName,
		"type":        listing.Type,
		"tags":        listing.Tags,
		"amenities":   listing.Amenities,
		"published":   listing.Published,
	}
	unset := bson.M{}
	for field, value := range map[string]*float64{"price": listing.Price, "lat": listing.Lat, "lng": listing.Lng} {
		if value != nil {
			set[field] = *value
		} else {
			unset[field] = 1
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFound("Listing", nil)
	}
	return nil
}

func (r *mongoListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NotFound("Listing", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("Listing", nil)
	}
	return nil
}

func (r *mongoListingRepository) ListPublic(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	query := bson.M{}
	if filter.Published != nil {
		query["published"] = *filter.Published
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(repository.PublicListingCap)

	return r.findListings(ctx, query, opts)
}

func (r *mongoListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findListings(ctx, bson.M{"owner": ownerID}, opts)
}

func (r *mongoListingRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Internal("Failed to count listings", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	listings, err := r.findListings(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *mongoListingRepository) SetRating(ctx context.Context, id string, average *float64, count *int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NotFound("Listing", err)
	}

	var update bson.M
	if average == nil || count == nil {
		update = bson.M{"$unset": bson.M{"averageRating": 1, "reviewCount": 1}}
	} else {
		update = bson.M{"$set": bson.M{"averageRating": *average, "reviewCount": *count}}
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return errors.Internal("Failed to update listing rating", err)
	}
	return nil
}

func (r *mongoListingRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Internal("Failed to count listings", err)
	}
	return total, nil
}

func (r *mongoListingRepository) findListings(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*entity.Listing, error) {
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Internal("Failed to list listings", err)
	}
	defer cursor.Close(ctx)

	var listings []*entity.Listing
	for cursor.Next(ctx) {
		var doc listingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Internal("Failed to decode listing", err)
		}
		listings = append(listings, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate listings", err)
	}
	return listings, nil
}
