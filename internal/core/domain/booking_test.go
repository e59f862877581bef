package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverho/innkeep/internal/core/domain"
)

func d(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDate(s)
	require.NoError(t, err)
	return parsed
}

func TestOverlaps(t *testing.T) {
	b := domain.Booking{
		Start: d(t, "2025-09-09"),
		End:   d(t, "2025-09-12"),
	}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"fully before", "2025-09-01", "2025-09-08", false},
		{"touching first night", "2025-09-05", "2025-09-09", true},
		{"ending the night before", "2025-09-05", "2025-09-08", false},
		{"contained", "2025-09-10", "2025-09-11", true},
		{"containing", "2025-09-01", "2025-09-30", true},
		{"touching last night", "2025-09-12", "2025-09-14", true},
		{"starting the night after", "2025-09-13", "2025-09-14", false},
		{"single shared night", "2025-09-09", "2025-09-09", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Overlaps(d(t, tc.start), d(t, tc.end)))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, domain.Nights(d(t, "2025-09-01"), d(t, "2025-09-04")))
	assert.Equal(t, 1, domain.Nights(d(t, "2025-09-01"), d(t, "2025-09-02")))
	assert.Equal(t, 31, domain.Nights(d(t, "2025-01-01"), d(t, "2025-02-01")))
}

func TestParseRoomType(t *testing.T) {
	typ, err := domain.ParseRoomType("deluxe")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomDeluxe, typ)

	_, err = domain.ParseRoomType("PENTHOUSE")
	assert.Error(t, err)
}

func TestParseBookingStatus(t *testing.T) {
	st, err := domain.ParseBookingStatus(" cancelled ")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, st)

	_, err = domain.ParseBookingStatus("PAID")
	assert.Error(t, err)
}
