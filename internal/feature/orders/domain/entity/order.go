// Package entity defines the domain models for the orders feature.
package entity

import "time"

// Order statuses and the allowed transitions:
// placed -> confirmed -> delivered (farmer), placed -> cancelled (buyer).
const (
	StatusPlaced    = "placed"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order represents a buyer's purchase of (part of) a listing.
// FarmerID is denormalized from the listing for permission checks.
type Order struct {
	ID               uint
	ListingID        uint
	BuyerID          uint
	FarmerID         uint
	Commodity        string
	QuantityQuintals float64
	UnitPrice        float64 // Price per quintal at order time
	TotalPrice       float64
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
