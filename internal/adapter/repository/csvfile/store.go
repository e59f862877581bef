package csvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/domain"
)

const (
	roomsHeader    = "id,type,rate,description"
	bookingsHeader = "id,roomId,guestName,guestEmail,start,end,status,totalAmount"
)

// Store keeps the room inventory and the booking log as UTF-8 CSV
// files. A missing rooms file is bootstrapped with the seed inventory;
// a missing bookings file is created header-only. SaveBookings always
// rewrites the whole bookings file, through a temp file and an atomic
// rename so a crash mid-save never leaves a half-written store behind.
//
// Load policy: a *FormatError aborts the load of that file, a
// *ParseError on an individual row is skipped with a warning.
type Store struct {
	roomsPath    string
	bookingsPath string
	log          zerolog.Logger
}

func NewStore(roomsPath, bookingsPath string, log zerolog.Logger) *Store {
	return &Store{
		roomsPath:    roomsPath,
		bookingsPath: bookingsPath,
		log:          log,
	}
}

func (s *Store) LoadRooms(ctx context.Context) ([]domain.Room, error) {
	if _, err := os.Stat(s.roomsPath); errors.Is(err, os.ErrNotExist) {
		s.log.Info().Str("file", s.roomsPath).Msg("room inventory missing, writing seed inventory")
		if err := s.writeRoomsFile(domain.DefaultInventory()); err != nil {
			return nil, fmt.Errorf("seeding room inventory: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	lines, err := readLines(s.roomsPath)
	if err != nil {
		return nil, err
	}

	var rooms []domain.Room
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.roomsPath, i+1, err)
		}
		room, err := decodeRoom(fields)
		if err != nil {
			s.log.Warn().Str("file", s.roomsPath).Int("line", i+1).Err(err).Msg("skipping unreadable room row")
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *Store) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	if _, err := os.Stat(s.bookingsPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(s.bookingsPath, []byte(bookingsHeader+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("creating booking store: %w", err)
		}
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	lines, err := readLines(s.bookingsPath)
	if err != nil {
		return nil, err
	}

	var bookings []domain.Booking
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.bookingsPath, i+1, err)
		}
		booking, err := decodeBooking(fields)
		if err != nil {
			s.log.Warn().Str("file", s.bookingsPath).Int("line", i+1).Err(err).Msg("skipping unreadable booking row")
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (s *Store) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.bookingsPath), ".bookings-*")
	if err != nil {
		return fmt.Errorf("creating temp booking store: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintln(w, bookingsHeader)
	for i := range bookings {
		fmt.Fprintln(w, encodeBooking(&bookings[i]))
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing booking store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing booking store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing booking store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.bookingsPath); err != nil {
		return fmt.Errorf("replacing booking store: %w", err)
	}
	return nil
}

func (s *Store) writeRoomsFile(rooms []domain.Room) error {
	var sb strings.Builder
	sb.WriteString(roomsHeader + "\n")
	for i := range rooms {
		sb.WriteString(encodeRoom(&rooms[i]) + "\n")
	}
	return os.WriteFile(s.roomsPath, []byte(sb.String()), 0o644)
}

func encodeRoom(r *domain.Room) string {
	return EncodeLine([]string{r.ID, string(r.Type), r.RatePerNight.StringFixed(2), r.Description})
}

func decodeRoom(fields []string) (domain.Room, error) {
	if len(fields) != 4 {
		return domain.Room{}, &ParseError{Field: "record", Err: fmt.Errorf("expected 4 fields, got %d", len(fields))}
	}

	typ, err := domain.ParseRoomType(fields[1])
	if err != nil {
		return domain.Room{}, &ParseError{Field: "type", Err: err}
	}

	rate, err := decimal.NewFromString(fields[2])
	if err != nil {
		return domain.Room{}, &ParseError{Field: "rate", Err: err}
	}
	if rate.IsNegative() {
		return domain.Room{}, &ParseError{Field: "rate", Err: fmt.Errorf("negative rate %s", rate)}
	}

	return domain.Room{
		ID:           fields[0],
		Type:         typ,
		RatePerNight: rate,
		Description:  fields[3],
	}, nil
}

func encodeBooking(b *domain.Booking) string {
	return EncodeLine([]string{
		b.ID,
		b.RoomID,
		b.GuestName,
		b.GuestEmail,
		domain.FormatDate(b.Start),
		domain.FormatDate(b.End),
		string(b.Status),
		b.TotalAmount.StringFixed(2),
	})
}

func decodeBooking(fields []string) (domain.Booking, error) {
	if len(fields) != 8 {
		return domain.Booking{}, &ParseError{Field: "record", Err: fmt.Errorf("expected 8 fields, got %d", len(fields))}
	}

	start, err := domain.ParseDate(fields[4])
	if err != nil {
		return domain.Booking{}, &ParseError{Field: "start", Err: err}
	}

	end, err := domain.ParseDate(fields[5])
	if err != nil {
		return domain.Booking{}, &ParseError{Field: "end", Err: err}
	}
	if end.Before(start) {
		return domain.Booking{}, &ParseError{Field: "end", Err: fmt.Errorf("end %s before start %s", fields[5], fields[4])}
	}

	status, err := domain.ParseBookingStatus(fields[6])
	if err != nil {
		return domain.Booking{}, &ParseError{Field: "status", Err: err}
	}

	amount, err := decimal.NewFromString(fields[7])
	if err != nil {
		return domain.Booking{}, &ParseError{Field: "totalAmount", Err: err}
	}
	if amount.IsNegative() {
		return domain.Booking{}, &ParseError{Field: "totalAmount", Err: fmt.Errorf("negative amount %s", amount)}
	}

	return domain.Booking{
		ID:          fields[0],
		RoomID:      fields[1],
		GuestName:   fields[2],
		GuestEmail:  fields[3],
		Start:       start,
		End:         end,
		Status:      status,
		TotalAmount: amount,
	}, nil
}

func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}
