// Package entity defines the domain models for the negotiation feature.
package entity

import "time"

// Thread statuses. A thread stays open until the farmer accepts or
// declines; once closed no further offers are recorded.
const (
	ThreadOpen     = "open"
	ThreadAccepted = "accepted"
	ThreadDeclined = "declined"
)

// Thread is a price negotiation between a buyer and the farmer who owns
// the listing. AgreedPrice is set only when the thread is accepted.
type Thread struct {
	ID          uint
	ListingID   uint
	BuyerID     uint
	FarmerID    uint
	Status      string
	AgreedPrice *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Offer is a single price proposal inside a thread. Offers alternate
// between the two participants but the order is not enforced.
type Offer struct {
	ID              uint
	ThreadID        uint
	UserID          uint
	PricePerQuintal float64
	Message         string
	CreatedAt       time.Time
}
