package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Booking represents a reservation of a place by a user. The user is stamped
// from the authenticated caller at creation time.
//
// On the wire the booked place travels under a single "place" key: clients
// send the listing id, and expanded reads return the full listing document in
// its position. The custom JSON methods below carry that shape.
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	PlaceID   string    `json:"-"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	NumGuests int       `json:"numberOfGuests"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"createdAt"`

	// Place is populated on reads that expand the booked listing.
	Place *Place `json:"-"`
}

// MarshalJSON emits "place" as the expanded listing when loaded, and as the
// bare listing id otherwise.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	out := struct {
		alias
		Place interface{} `json:"place"`
	}{alias: alias(b), Place: b.PlaceID}
	if b.Place != nil {
		out.Place = b.Place
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts "place" as a listing id string.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type alias Booking
	aux := struct {
		*alias
		Place json.RawMessage `json:"place"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Place) > 0 && string(aux.Place) != "null" {
		if err := json.Unmarshal(aux.Place, &b.PlaceID); err != nil {
			return fmt.Errorf("place must be a listing id: %w", err)
		}
	}
	return nil
}
