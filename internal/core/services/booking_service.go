package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/domain"
	"github.com/dverho/innkeep/internal/core/ports"
)

// CreateBookingRequest uses the caller-facing half-open date
// convention: CheckOut is the departure date, not an occupied night.
type CreateBookingRequest struct {
	RoomID     string
	GuestName  string
	GuestEmail string
	CheckIn    time.Time
	CheckOut   time.Time
	CardNumber string
}

type CreateBookingResponse struct {
	BookingID   string
	RoomID      string
	Nights      int
	TotalAmount decimal.Decimal
	Status      domain.BookingStatus
}

const (
	availVersionKey = "avail:ver"
	availCacheTTL   = 5 * time.Minute
)

// BookingService is the reservation engine. It owns the authoritative
// in-memory state for one room inventory; every mutation runs under a
// single write lock spanning the availability re-check, the payment
// call and the durable rewrite, so two overlapping bookings for the
// same room can never both succeed. The redis client is an optional
// search-result cache and never participates in correctness.
type BookingService struct {
	mu         sync.RWMutex
	rooms      map[string]domain.Room
	roomIDs    []string
	bookings   map[string]*domain.Booking
	bookingIDs []string

	bookingStore ports.BookingStore
	payments     ports.PaymentGateway
	redisClient  *redis.Client
	log          zerolog.Logger
}

func NewBookingService(
	ctx context.Context,
	roomStore ports.RoomStore,
	bookingStore ports.BookingStore,
	payments ports.PaymentGateway,
	redisClient *redis.Client,
	log zerolog.Logger,
) (*BookingService, error) {
	rooms, err := roomStore.LoadRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}

	bookings, err := bookingStore.LoadBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}

	s := &BookingService{
		rooms:        make(map[string]domain.Room, len(rooms)),
		bookings:     make(map[string]*domain.Booking, len(bookings)),
		bookingStore: bookingStore,
		payments:     payments,
		redisClient:  redisClient,
		log:          log,
	}

	for _, r := range rooms {
		if _, dup := s.rooms[r.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q in inventory", r.ID)
		}
		s.rooms[r.ID] = r
		s.roomIDs = append(s.roomIDs, r.ID)
	}

	for _, b := range bookings {
		if _, dup := s.bookings[b.ID]; dup {
			return nil, fmt.Errorf("duplicate booking id %q in store", b.ID)
		}
		s.bookings[b.ID] = &b
		s.bookingIDs = append(s.bookingIDs, b.ID)
	}

	return s, nil
}

// Search returns the rooms free for every night in [checkIn, checkOut),
// optionally restricted to one room type. Results follow inventory
// order and are advisory: CreateBooking re-checks at commit time.
func (s *BookingService) Search(ctx context.Context, checkIn, checkOut time.Time, roomType *domain.RoomType) ([]domain.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidRange
	}
	lastNight := checkOut.AddDate(0, 0, -1)

	if ids, ok := s.cachedSearch(ctx, checkIn, lastNight, roomType); ok {
		return s.roomsByID(ids), nil
	}

	s.mu.RLock()
	var result []domain.Room
	for _, id := range s.roomIDs {
		room := s.rooms[id]
		if roomType != nil && room.Type != *roomType {
			continue
		}
		if s.hasConflict(id, checkIn, lastNight) {
			continue
		}
		result = append(result, room)
	}
	s.mu.RUnlock()

	s.storeSearch(ctx, checkIn, lastNight, roomType, result)

	return result, nil
}

// CreateBooking books a room for [CheckIn, CheckOut). The overlap check
// here is authoritative; payment is charged between the check and the
// insert so a declined card leaves no state behind. A failed durable
// write does not undo the booking: the caller gets the created booking
// together with a *domain.PersistenceWarning.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, domain.ErrInvalidRange
	}
	lastNight := req.CheckOut.AddDate(0, 0, -1)
	nights := domain.Nights(req.CheckIn, req.CheckOut)

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[req.RoomID]
	if !ok {
		return nil, domain.ErrUnknownRoom
	}

	if s.hasConflict(room.ID, req.CheckIn, lastNight) {
		return nil, domain.ErrRoomUnavailable
	}

	amount := room.RatePerNight.Mul(decimal.NewFromInt(int64(nights)))

	if pr := s.payments.Charge(ctx, amount, req.CardNumber); !pr.Accepted {
		return nil, &domain.PaymentDeclinedError{Reason: pr.Reason}
	}

	booking := &domain.Booking{
		ID:          s.newBookingID(),
		RoomID:      room.ID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		Start:       req.CheckIn,
		End:         lastNight,
		Status:      domain.BookingActive,
		TotalAmount: amount,
	}
	s.bookings[booking.ID] = booking
	s.bookingIDs = append(s.bookingIDs, booking.ID)

	s.bumpAvailabilityVersion(ctx)

	resp := &CreateBookingResponse{
		BookingID:   booking.ID,
		RoomID:      room.ID,
		Nights:      nights,
		TotalAmount: amount,
		Status:      booking.Status,
	}

	if err := s.bookingStore.SaveBookings(ctx, s.snapshotLocked()); err != nil {
		s.log.Warn().Err(err).Str("booking_id", booking.ID).Msg("booking created but not persisted")
		return resp, &domain.PersistenceWarning{Err: err}
	}

	return resp, nil
}

// CancelBooking transitions a booking to CANCELLED. The refund must be
// accepted before any state changes; a cancelled booking stays in the
// store for history and never re-enters availability math.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if !b.IsActive() {
		return domain.ErrAlreadyCancelled
	}

	if pr := s.payments.Refund(ctx, b.TotalAmount); !pr.Accepted {
		return &domain.RefundDeclinedError{Reason: pr.Reason}
	}

	b.Status = domain.BookingCancelled

	s.bumpAvailabilityVersion(ctx)

	if err := s.bookingStore.SaveBookings(ctx, s.snapshotLocked()); err != nil {
		s.log.Warn().Err(err).Str("booking_id", bookingID).Msg("cancellation applied but not persisted")
		return &domain.PersistenceWarning{Err: err}
	}

	return nil
}

func (s *BookingService) FindBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	out := *b
	return &out, nil
}

func (s *BookingService) ListRooms(ctx context.Context) []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Room, 0, len(s.roomIDs))
	for _, id := range s.roomIDs {
		out = append(out, s.rooms[id])
	}
	return out
}

func (s *BookingService) ListBookings(ctx context.Context) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Flush rewrites the booking store from current state. Called once at
// shutdown so a booking that only got a PersistenceWarning has a last
// chance to reach disk.
func (s *BookingService) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookingStore.SaveBookings(ctx, s.snapshotLocked())
}

// hasConflict reports whether any active booking for the room overlaps
// the inclusive range. Callers must hold at least the read lock.
func (s *BookingService) hasConflict(roomID string, start, end time.Time) bool {
	for _, b := range s.bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// snapshotLocked copies all bookings in load-then-creation order.
// Callers must hold at least the read lock.
func (s *BookingService) snapshotLocked() []domain.Booking {
	out := make([]domain.Booking, 0, len(s.bookingIDs))
	for _, id := range s.bookingIDs {
		out = append(out, *s.bookings[id])
	}
	return out
}

// newBookingID generates a compact random id, regenerating on the
// (vanishingly unlikely) collision. Callers must hold the write lock.
func (s *BookingService) newBookingID() string {
	for {
		id := "BKG-" + strings.ToUpper(uuid.NewString()[:8])
		if _, exists := s.bookings[id]; !exists {
			return id
		}
	}
}

func (s *BookingService) searchCacheKey(ctx context.Context, checkIn, lastNight time.Time, roomType *domain.RoomType) (string, bool) {
	if s.redisClient == nil {
		return "", false
	}

	ver, err := s.redisClient.Get(ctx, availVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}

	t := "ANY"
	if roomType != nil {
		t = string(*roomType)
	}

	return fmt.Sprintf("avail:%d:%s:%s:%s", ver, domain.FormatDate(checkIn), domain.FormatDate(lastNight), t), true
}

func (s *BookingService) cachedSearch(ctx context.Context, checkIn, lastNight time.Time, roomType *domain.RoomType) ([]string, bool) {
	key, ok := s.searchCacheKey(ctx, checkIn, lastNight, roomType)
	if !ok {
		return nil, false
	}

	raw, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false
	}

	return ids, true
}

func (s *BookingService) storeSearch(ctx context.Context, checkIn, lastNight time.Time, roomType *domain.RoomType, rooms []domain.Room) {
	key, ok := s.searchCacheKey(ctx, checkIn, lastNight, roomType)
	if !ok {
		return
	}

	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}

	if err := s.redisClient.Set(ctx, key, raw, availCacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Msg("availability cache write failed")
	}
}

// bumpAvailabilityVersion invalidates every cached search result by
// moving the version folded into the cache keys; stale entries expire
// on their own TTL.
func (s *BookingService) bumpAvailabilityVersion(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Incr(ctx, availVersionKey).Err(); err != nil {
		s.log.Debug().Err(err).Msg("availability cache invalidation failed")
	}
}

func (s *BookingService) roomsByID(ids []string) []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Room, 0, len(ids))
	for _, id := range ids {
		if room, ok := s.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out
}
