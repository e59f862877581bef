package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case BookingActive, BookingCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// Booking is a claim on one room for an inclusive range of nights.
// Start and End are both occupied nights; a guest checking out on the
// 10th has End on the 9th. Everything except Status is immutable after
// creation, and cancellation is the only status transition.
type Booking struct {
	ID          string
	RoomID      string
	GuestName   string
	GuestEmail  string
	Start       time.Time
	End         time.Time
	Status      BookingStatus
	TotalAmount decimal.Decimal
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingActive
}

// Overlaps reports whether the inclusive range [start, end] shares at
// least one night with this booking.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !(end.Before(b.Start) || start.After(b.End))
}
