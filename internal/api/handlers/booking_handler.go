package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/models"
	"github.com/airstay/airstay-api/internal/services"
)

// BookingHandler handles HTTP requests for reservations.
type BookingHandler struct {
	service services.BookingServiceProvider
	events  services.EventServiceProvider
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service services.BookingServiceProvider, events services.EventServiceProvider) *BookingHandler {
	return &BookingHandler{service: service, events: events}
}

// Create handles the request to book a place. The booking user is always the
// authenticated caller.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if booking.PlaceID == "" {
		writeError(w, http.StatusUnprocessableEntity, "place is required")
		return
	}

	created, err := h.service.CreateBooking(user.ID, booking)
	if err != nil {
		log.Warn().Err(err).Str("place_id", booking.PlaceID).Msg("Failed to create booking")
		writeServiceError(w, err)
		return
	}

	h.events.Record("booking.create", "booking created for place "+created.PlaceID, user.ID)
	writeJSON(w, http.StatusOK, created)
}

// GetMine handles the request to list the caller's bookings, with the booked
// place expanded.
func (h *BookingHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	bookings, err := h.service.GetBookingsByUser(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to retrieve bookings")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
