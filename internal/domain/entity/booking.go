package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	ListingID string        `json:"listing" bson:"listing"`
	UserID    string        `json:"user" bson:"user"`
	FromDate  *time.Time    `json:"fromDate,omitempty" bson:"fromDate,omitempty"`
	ToDate    *time.Time    `json:"toDate,omitempty" bson:"toDate,omitempty"`
	Status    BookingStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// BookingDetail is a booking joined with the records it references for display.
// Either side may be nil when the referenced document has been deleted; the
// dangling id on the booking itself is kept as-is.
type BookingDetail struct {
	*Booking
	ListingDetail *Listing `json:"listingDetail,omitempty"`
	Requester     *User    `json:"requester,omitempty"`
}
