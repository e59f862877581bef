package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverho/innkeep/internal/adapter/payment"
	"github.com/dverho/innkeep/internal/adapter/repository/csvfile"
	"github.com/dverho/innkeep/internal/core/domain"
	"github.com/dverho/innkeep/internal/core/services"
)

func newTempStore(t *testing.T) (*csvfile.Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	roomsPath := filepath.Join(dir, "rooms.csv")
	bookingsPath := filepath.Join(dir, "bookings.csv")
	return csvfile.NewStore(roomsPath, bookingsPath, zerolog.Nop()), roomsPath, bookingsPath
}

func TestLoadRooms_BootstrapsSeedInventory(t *testing.T) {
	store, roomsPath, _ := newTempStore(t)

	rooms, err := store.LoadRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 6)

	assert.Equal(t, "R101", rooms[0].ID)
	assert.Equal(t, domain.RoomStandard, rooms[0].Type)
	assert.True(t, rooms[0].RatePerNight.Equal(decimal.RequireFromString("75.00")))
	assert.Equal(t, "S302", rooms[5].ID)

	raw, err := os.ReadFile(roomsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "id,type,rate,description", lines[0])
	assert.Equal(t, `"R101","STANDARD","75.00","Standard single bed"`, lines[1])
}

func TestLoadRooms_StableAcrossReloads(t *testing.T) {
	store, _, _ := newTempStore(t)

	first, err := store.LoadRooms(context.Background())
	require.NoError(t, err)
	second, err := store.LoadRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadBookings_CreatesHeaderOnlyFile(t *testing.T) {
	store, _, bookingsPath := newTempStore(t)

	bookings, err := store.LoadBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)

	raw, err := os.ReadFile(bookingsPath)
	require.NoError(t, err)
	assert.Equal(t, "id,roomId,guestName,guestEmail,start,end,status,totalAmount\n", string(raw))
}

func TestSaveBookings_RoundTripsAwkwardText(t *testing.T) {
	store, _, _ := newTempStore(t)
	ctx := context.Background()

	_, err := store.LoadBookings(ctx)
	require.NoError(t, err)

	start, _ := domain.ParseDate("2025-09-01")
	end, _ := domain.ParseDate("2025-09-03")
	booking := domain.Booking{
		ID:          "BKG-0F3A9C21",
		RoomID:      "R101",
		GuestName:   `Bob "The Knife", Esq.`,
		GuestEmail:  "bob@example.com",
		Start:       start,
		End:         end,
		Status:      domain.BookingActive,
		TotalAmount: decimal.RequireFromString("225.00"),
	}

	require.NoError(t, store.SaveBookings(ctx, []domain.Booking{booking}))

	reloaded, err := store.LoadBookings(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, booking.GuestName, reloaded[0].GuestName)
	assert.Equal(t, booking.Start, reloaded[0].Start)
	assert.Equal(t, booking.End, reloaded[0].End)
	assert.True(t, booking.TotalAmount.Equal(reloaded[0].TotalAmount))
}

func TestLoadBookings_SkipsRowWithBadFieldValue(t *testing.T) {
	store, _, bookingsPath := newTempStore(t)

	content := strings.Join([]string{
		"id,roomId,guestName,guestEmail,start,end,status,totalAmount",
		`"BKG-1","R101","A","a@x","2025-09-01","2025-09-02","ACTIVE","150.00"`,
		`"BKG-2","R101","B","b@x","2025-09-03","2025-09-04","PENDING","150.00"`,
		`"BKG-3","R101","C","c@x","not-a-date","2025-09-06","ACTIVE","150.00"`,
		`"BKG-4","R102","D","d@x","2025-09-01","2025-09-02","CANCELLED","160.00"`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(bookingsPath, []byte(content), 0o644))

	bookings, err := store.LoadBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "BKG-1", bookings[0].ID)
	assert.Equal(t, "BKG-4", bookings[1].ID)
}

func TestLoadBookings_CorruptLineAbortsLoad(t *testing.T) {
	store, _, bookingsPath := newTempStore(t)

	content := strings.Join([]string{
		"id,roomId,guestName,guestEmail,start,end,status,totalAmount",
		`"BKG-1","R101","A","a@x","2025-09-01","2025-09-02","ACTIVE","150.00"`,
		`"BKG-2","R101","B","b@x","2025-09-03`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(bookingsPath, []byte(content), 0o644))

	_, err := store.LoadBookings(context.Background())
	var fe *csvfile.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "line 3")
}

// Full lifecycle against real files: book, cancel, then rebuild the
// engine from the same files as a process restart would and check the
// last committed status survived.
func TestStatusSurvivesRestart(t *testing.T) {
	store, roomsPath, bookingsPath := newTempStore(t)
	ctx := context.Background()

	gateway := payment.NewSimulator(0, 0)

	svc, err := services.NewBookingService(ctx, store, store, gateway, nil, zerolog.Nop())
	require.NoError(t, err)

	checkIn, _ := domain.ParseDate("2025-09-01")
	checkOut, _ := domain.ParseDate("2025-09-04")

	resp, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		RoomID:     "R101",
		GuestName:  "Grace Hopper",
		GuestEmail: "grace@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, resp.BookingID))

	// "Restart": a fresh store and a fresh engine over the same files.
	reopened := csvfile.NewStore(roomsPath, bookingsPath, zerolog.Nop())
	svc2, err := services.NewBookingService(ctx, reopened, reopened, gateway, nil, zerolog.Nop())
	require.NoError(t, err)

	found, err := svc2.FindBooking(ctx, resp.BookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("225.00")))
}
