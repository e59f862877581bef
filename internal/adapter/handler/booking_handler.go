package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dverho/innkeep/internal/core/domain"
	"github.com/dverho/innkeep/internal/core/services"
)

// BookingHandler is the thin HTTP front end over the reservation
// engine. It only translates between the wire and the six core
// operations; all business rules live in the service.
type BookingHandler struct {
	svc      *services.BookingService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewBookingHandler(svc *services.BookingService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

func (h *BookingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/rooms", h.ListRooms)
	r.Get("/rooms/available", h.SearchRooms)
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings", h.ListBookings)
	r.Get("/bookings/{id}", h.GetBooking)
	r.Delete("/bookings/{id}", h.CancelBooking)

	return r
}

type createBookingRequest struct {
	RoomID     string `json:"room_id" validate:"required"`
	GuestName  string `json:"guest_name" validate:"required"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	CardNumber string `json:"card_number"`
}

type bookingResponse struct {
	BookingID   string `json:"booking_id"`
	RoomID      string `json:"room_id"`
	GuestName   string `json:"guest_name,omitempty"`
	GuestEmail  string `json:"guest_email,omitempty"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	Warning     string `json:"warning,omitempty"`
}

type roomResponse struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	RatePerNight string `json:"rate_per_night"`
	Description  string `json:"description"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_out must be YYYY-MM-DD")
		return
	}

	resp, err := h.svc.CreateBooking(r.Context(), services.CreateBookingRequest{
		RoomID:     req.RoomID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		CardNumber: req.CardNumber,
	})

	var warning string
	if err != nil {
		var warn *domain.PersistenceWarning
		if !errors.As(err, &warn) {
			writeError(w, statusForError(err), err.Error())
			return
		}
		warning = warn.Error()
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		BookingID:   resp.BookingID,
		RoomID:      resp.RoomID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Status:      string(resp.Status),
		TotalAmount: resp.TotalAmount.StringFixed(2),
		Warning:     warning,
	})
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.svc.CancelBooking(r.Context(), id)

	var warning string
	if err != nil {
		var warn *domain.PersistenceWarning
		if !errors.As(err, &warn) {
			writeError(w, statusForError(err), err.Error())
			return
		}
		warning = warn.Error()
	}

	resp := map[string]string{
		"booking_id": id,
		"status":     string(domain.BookingCancelled),
	}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.svc.FindBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, bookingToResponse(booking))
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.svc.ListBookings(r.Context())

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingToResponse(&bookings[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.svc.ListRooms(r.Context())

	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, roomToResponse(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	checkIn, err := domain.ParseDate(q.Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := domain.ParseDate(q.Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "check_out must be YYYY-MM-DD")
		return
	}

	var roomType *domain.RoomType
	if raw := q.Get("type"); raw != "" {
		t, err := domain.ParseRoomType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		roomType = &t
	}

	rooms, err := h.svc.Search(r.Context(), checkIn, checkOut, roomType)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, roomToResponse(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func bookingToResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		GuestName:   b.GuestName,
		GuestEmail:  b.GuestEmail,
		CheckIn:     domain.FormatDate(b.Start),
		CheckOut:    domain.FormatDate(b.End.AddDate(0, 0, 1)),
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount.StringFixed(2),
	}
}

func roomToResponse(room *domain.Room) roomResponse {
	return roomResponse{
		ID:           room.ID,
		Type:         string(room.Type),
		RatePerNight: room.RatePerNight.StringFixed(2),
		Description:  room.Description,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownRoom),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoomUnavailable),
		errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict
	}

	var paymentErr *domain.PaymentDeclinedError
	var refundErr *domain.RefundDeclinedError
	if errors.As(err, &paymentErr) || errors.As(err, &refundErr) {
		return http.StatusPaymentRequired
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
