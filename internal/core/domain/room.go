package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomStandard RoomType = "STANDARD"
	RoomDeluxe   RoomType = "DELUXE"
	RoomSuite    RoomType = "SUITE"
)

func ParseRoomType(s string) (RoomType, error) {
	switch t := RoomType(strings.ToUpper(strings.TrimSpace(s))); t {
	case RoomStandard, RoomDeluxe, RoomSuite:
		return t, nil
	default:
		return "", fmt.Errorf("unknown room type %q", s)
	}
}

// Room is a bookable unit. Rooms are created at inventory bootstrap or
// load and never change afterwards.
type Room struct {
	ID           string
	Type         RoomType
	RatePerNight decimal.Decimal
	Description  string
}
