package domain

import "github.com/shopspring/decimal"

// DefaultInventory is the seed set written when a backing store is
// bootstrapped for the first time.
func DefaultInventory() []Room {
	rate := decimal.RequireFromString
	return []Room{
		{ID: "R101", Type: RoomStandard, RatePerNight: rate("75.00"), Description: "Standard single bed"},
		{ID: "R102", Type: RoomStandard, RatePerNight: rate("80.00"), Description: "Standard double bed"},
		{ID: "R201", Type: RoomDeluxe, RatePerNight: rate("120.00"), Description: "Deluxe with city view"},
		{ID: "R202", Type: RoomDeluxe, RatePerNight: rate("130.00"), Description: "Deluxe with balcony"},
		{ID: "S301", Type: RoomSuite, RatePerNight: rate("220.00"), Description: "Executive suite"},
		{ID: "S302", Type: RoomSuite, RatePerNight: rate("260.00"), Description: "Luxury suite with lounge"},
	}
}
