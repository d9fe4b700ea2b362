package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/database"
	"github.com/airstay/airstay-api/internal/services"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db, err := database.New("file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	tokens := auth.NewTokenManager([]byte("test-secret"))
	userService := services.NewUserService(db)
	placeService := services.NewPlaceService(db)
	bookingService := services.NewBookingService(db)
	eventService := services.NewEventService(db)

	return NewRouter(tokens, userService, placeService, bookingService, eventService, "http://localhost:5173")
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func loginAs(t *testing.T, router http.Handler, name, email string) (string, []*http.Cookie) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": "p",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": email, "password": "p",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var session []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.Value != "" {
			session = append(session, c)
		}
	}
	require.NotEmpty(t, session, "login must set the session cookie")
	return id, session
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "A", "email": "a@x.com", "password": "p",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "A", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	// Duplicate email is a validation failure
	rec = doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"name": "A2", "email": "a@x.com", "password": "q",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Missing fields too
	rec = doJSON(t, router, http.MethodPost, "/register", map[string]string{"email": "b@x.com"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id, session := loginAs(t, router, "C", "c@x.com")

	rec = doJSON(t, router, http.MethodGet, "/profile", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)
	assert.Equal(t, id, profile["id"])
	assert.Equal(t, "C", profile["name"])
	assert.Equal(t, "c@x.com", profile["email"])

	// No cookie, no profile
	rec = doJSON(t, router, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOwnershipFlow(t *testing.T) {
	router := newTestRouter(t)

	ownerID, ownerSession := loginAs(t, router, "Owner", "owner@x.com")
	_, intruderSession := loginAs(t, router, "Intruder", "intruder@x.com")

	// Create requires auth
	rec := doJSON(t, router, http.MethodPost, "/places", map[string]interface{}{"title": "Hut"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Client-supplied owner is ignored; photos arrive under the form's
	// addedPhotos name and come back as photos
	rec = doJSON(t, router, http.MethodPost, "/places", map[string]interface{}{
		"title":       "Beach hut",
		"owner":       "spoofed-owner",
		"address":     "1 Shore Rd",
		"addedPhotos": []string{"https://example.com/a.jpg"},
		"perks":       []string{"wifi"},
		"maxGuests":   4,
		"price":       120,
	}, ownerSession)
	require.Equal(t, http.StatusOK, rec.Code)
	place := decodeBody(t, rec)
	placeID := place["id"].(string)
	assert.Equal(t, ownerID, place["owner"])
	assert.Equal(t, []interface{}{"https://example.com/a.jpg"}, place["photos"])
	assert.NotContains(t, place, "addedPhotos")

	// Public read, no cookie needed
	rec = doJSON(t, router, http.MethodGet, "/places/"+placeID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beach hut", decodeBody(t, rec)["title"])

	rec = doJSON(t, router, http.MethodGet, "/places", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A non-owner's edit is forbidden and writes nothing
	rec = doJSON(t, router, http.MethodPut, "/places", map[string]interface{}{
		"id": placeID, "title": "Hijacked",
	}, intruderSession)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/places/"+placeID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beach hut", decodeBody(t, rec)["title"])

	// The owner's edit goes through
	rec = doJSON(t, router, http.MethodPut, "/places", map[string]interface{}{
		"id": placeID, "title": "Beach hut deluxe", "price": 150,
	}, ownerSession)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beach hut deluxe", decodeBody(t, rec)["title"])

	// Updating a missing listing is NotFound, not Forbidden
	rec = doJSON(t, router, http.MethodPut, "/places", map[string]interface{}{
		"id": "missing", "title": "x",
	}, ownerSession)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// user-places lists only the caller's listings
	rec = doJSON(t, router, http.MethodGet, "/user-places", nil, intruderSession)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestBookingFlow(t *testing.T) {
	router := newTestRouter(t)

	_, hostSession := loginAs(t, router, "Host", "host@x.com")
	guestID, guestSession := loginAs(t, router, "Guest", "guest@x.com")

	rec := doJSON(t, router, http.MethodPost, "/places", map[string]interface{}{"title": "Loft"}, hostSession)
	require.Equal(t, http.StatusOK, rec.Code)
	placeID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/bookings", map[string]interface{}{
		"place":          placeID,
		"checkIn":        "2026-10-01",
		"checkOut":       "2026-10-05",
		"numberOfGuests": 2,
		"name":           "Guest",
		"phone":          "555-0100",
		"price":          480,
	}, guestSession)
	require.Equal(t, http.StatusOK, rec.Code)
	booking := decodeBody(t, rec)
	assert.Equal(t, guestID, booking["user"])
	assert.Equal(t, placeID, booking["place"], "unexpanded booking carries the bare listing id")

	rec = doJSON(t, router, http.MethodGet, "/bookings", nil, guestSession)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	expanded, ok := bookings[0]["place"].(map[string]interface{})
	require.True(t, ok, "booking read must expand the place")
	assert.Equal(t, "Loft", expanded["title"])

	// The host has no bookings of their own
	rec = doJSON(t, router, http.MethodGet, "/bookings", nil, hostSession)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	_, session := loginAs(t, router, "A", "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/logout", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// A client that dropped the cookie is unauthenticated again
	rec = doJSON(t, router, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventsRecordActivity(t *testing.T) {
	router := newTestRouter(t)

	_, session := loginAs(t, router, "A", "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/places", map[string]interface{}{"title": "Cabin"}, session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/events?limit=10", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.NotEmpty(t, events)

	types := make(map[string]bool)
	for _, ev := range events {
		types[ev["type"].(string)] = true
	}
	assert.True(t, types["user.register"])
	assert.True(t, types["user.login"])
	assert.True(t, types["place.create"])
}
