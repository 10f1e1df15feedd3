package entity

import (
	"time"
)

// Review is one user's rating of one listing. At most one review may exist per
// (listing, user) pair; the reviews collection carries a unique compound index.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ListingID string    `json:"listing" bson:"listing"`
	UserID    string    `json:"user" bson:"user"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ReviewDetail carries the reviewer's public identity for display.
type ReviewDetail struct {
	*Review
	Reviewer *User `json:"reviewer,omitempty"`
}
