package models

import (
	"encoding/json"
	"time"
)

// Place represents a rental listing. The owner is stamped at creation time
// and never reassigned; only the owner may mutate the listing.
type Place struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`

	// AddedPhotos is the name the listing form submits photo links under.
	// On writes it takes precedence over Photos; responses always use Photos.
	AddedPhotos []string `json:"addedPhotos,omitempty"`

	// Raw JSON column values, populated by the service layer.
	PhotosJSON string `json:"-"`
	PerksJSON  string `json:"-"`
}

// Owner returns the owning user's id, satisfying the ownership guard.
func (p *Place) Owner() string { return p.OwnerID }

// PrepareForAPI unmarshals the JSON text columns into their slice fields.
func (p *Place) PrepareForAPI() {
	p.Photos = unmarshalStrings(p.PhotosJSON)
	p.Perks = unmarshalStrings(p.PerksJSON)
}

// PrepareForDB marshals the slice fields into their JSON text columns.
func (p *Place) PrepareForDB() error {
	if p.AddedPhotos != nil {
		p.Photos = p.AddedPhotos
		p.AddedPhotos = nil
	}
	photos, err := json.Marshal(p.Photos)
	if err != nil {
		return err
	}
	perks, err := json.Marshal(p.Perks)
	if err != nil {
		return err
	}
	p.PhotosJSON = string(photos)
	p.PerksJSON = string(perks)
	return nil
}

func unmarshalStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}
