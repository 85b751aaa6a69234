// Package entity defines the domain models for the listings feature.
package entity

import "time"

// Listing statuses. New listings start as pending and become visible to
// buyers only after an admin approves them.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
	StatusSold     = "sold"
)

// Listing represents produce offered for sale by a farmer.
type Listing struct {
	ID               uint      // Unique identifier
	FarmerID         uint      // Owning farmer's user ID
	Commodity        string    // Commodity name (e.g., "Wheat", "Onion")
	Variety          string    // Optional variety (e.g., "Sharbati")
	Region           string    // Region the produce is located in
	PricePerQuintal  float64   // Asking price per quintal
	QuantityQuintals float64   // Quantity still available
	Description      string    // Free-form description
	Status           string    // pending, active, rejected or sold
	CreatedAt        time.Time // Creation timestamp
	UpdatedAt        time.Time // Last update timestamp
}

// Filter narrows a listing browse query. Zero values mean "no constraint".
type Filter struct {
	Commodity string  // Case-insensitive commodity match
	Region    string  // Exact region match
	MaxPrice  float64 // Upper bound on price per quintal
	Status    string  // Listing status; browse forces "active"
}
