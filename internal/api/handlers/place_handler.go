package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/models"
	"github.com/airstay/airstay-api/internal/services"
)

// PlaceHandler handles HTTP requests for rental listings.
type PlaceHandler struct {
	service services.PlaceServiceProvider
	events  services.EventServiceProvider
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service services.PlaceServiceProvider, events services.EventServiceProvider) *PlaceHandler {
	return &PlaceHandler{service: service, events: events}
}

// GetAll handles the public request to list every place.
func (h *PlaceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	places, err := h.service.GetAllPlaces()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve places")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// Get handles the public request to get a single place by its ID.
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	place, err := h.service.GetPlaceByID(id)
	if err != nil {
		log.Warn().Err(err).Str("place_id", id).Msg("Failed to get place by ID")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// GetMine handles the request to list the caller's own places.
func (h *PlaceHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	places, err := h.service.GetPlacesByOwner(user.ID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", user.ID).Msg("Failed to retrieve owned places")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// Create handles the request to create a new place. The owner is always the
// authenticated caller; any client-supplied owner value is discarded.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if place.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	created, err := h.service.CreatePlace(user.ID, place)
	if err != nil {
		log.Error().Err(err).Str("owner_id", user.ID).Msg("Failed to create place")
		writeServiceError(w, err)
		return
	}

	h.events.Record("place.create", "place created: "+created.Title, user.ID)
	writeJSON(w, http.StatusOK, created)
}

// Update handles the request to update an existing place. The id travels in
// the request body. Only the recorded owner may update; the guard runs after
// the current listing is loaded and before anything is written.
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if place.ID == "" {
		writeError(w, http.StatusUnprocessableEntity, "id is required")
		return
	}

	updated, err := h.service.UpdatePlace(user.ID, place)
	if err != nil {
		log.Warn().Err(err).Str("place_id", place.ID).Str("actor_id", user.ID).Msg("Failed to update place")
		writeServiceError(w, err)
		return
	}

	h.events.Record("place.update", "place updated: "+updated.Title, user.ID)
	writeJSON(w, http.StatusOK, updated)
}
