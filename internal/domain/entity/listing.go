package entity

import (
	"time"
)

const (
	ListingTypeRoom = "room"
	ListingTypeFood = "food"
)

type Listing struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Address     string   `json:"address" bson:"address"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty"`
	Images      []string `json:"images" bson:"images"`
	ImageURL    string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	OwnerID     string   `json:"owner" bson:"owner"`
	HostName    string   `json:"hostName,omitempty" bson:"hostName,omitempty"`
	Lat         *float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty" bson:"lng,omitempty"`
	Type        string   `json:"type" bson:"type"`
	Tags        []string `json:"tags" bson:"tags"`
	Amenities   []string `json:"amenities" bson:"amenities"`
	Published   bool     `json:"published" bson:"published"`

	// Derived fields owned by the review use case. Listing writes never touch
	// them; nil means no reviews exist, which is distinct from a zero rating.
	AverageRating *float64 `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	ReviewCount   *int     `json:"reviewCount,omitempty" bson:"reviewCount,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// HasCoordinates reports whether the listing can participate in proximity search.
func (l *Listing) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}
