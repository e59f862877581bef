package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/domain"
)

// RoomStore loads the room inventory. Implementations bootstrap a seed
// inventory when the backing store does not exist yet; the inventory is
// never rewritten afterwards.
type RoomStore interface {
	LoadRooms(ctx context.Context) ([]domain.Room, error)
}

// BookingStore loads and persists the booking collection. SaveBookings
// is a full rewrite of the backing store in the given order, not an
// append.
type BookingStore interface {
	LoadBookings(ctx context.Context) ([]domain.Booking, error)
	SaveBookings(ctx context.Context, bookings []domain.Booking) error
}

// PaymentResult is the outcome of a charge or refund attempt.
type PaymentResult struct {
	Accepted bool
	Reason   string
}

// PaymentGateway is the injected payment capability. An empty card
// number on Charge is the always-accepted dummy path.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, cardNumber string) PaymentResult
	Refund(ctx context.Context, amount decimal.Decimal) PaymentResult
}
