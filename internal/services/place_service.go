package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/models"
)

// PlaceServiceProvider defines the interface for place services.
type PlaceServiceProvider interface {
	GetAllPlaces() ([]models.Place, error)
	GetPlaceByID(id string) (models.Place, error)
	GetPlacesByOwner(ownerID string) ([]models.Place, error)
	CreatePlace(ownerID string, place models.Place) (models.Place, error)
	UpdatePlace(actorID string, place models.Place) (models.Place, error)
}

// PlaceService provides business logic for listing management.
type PlaceService struct {
	db *sql.DB
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(db *sql.DB) *PlaceService {
	return &PlaceService{db: db}
}

const placeColumns = `id, owner_id, title, address, description, extra_info,
	check_in, check_out, max_guests, price, photos_json, perks_json, created_at`

// scanPlace is a helper to scan a place from a row or rows object.
func scanPlace(scanner interface{ Scan(...interface{}) error }) (models.Place, error) {
	var place models.Place
	var address, desc, extra, checkIn, checkOut sql.NullString
	var photos, perks sql.NullString
	var maxGuests, price sql.NullInt64

	err := scanner.Scan(
		&place.ID, &place.OwnerID, &place.Title, &address, &desc, &extra,
		&checkIn, &checkOut, &maxGuests, &price, &photos, &perks, &place.CreatedAt,
	)
	if err != nil {
		return place, err
	}

	place.Address = address.String
	place.Description = desc.String
	place.ExtraInfo = extra.String
	place.CheckIn = checkIn.String
	place.CheckOut = checkOut.String
	place.MaxGuests = int(maxGuests.Int64)
	place.Price = int(price.Int64)
	place.PhotosJSON = photos.String
	place.PerksJSON = perks.String

	place.PrepareForAPI()
	return place, nil
}

// GetAllPlaces retrieves every listing. Reads are public.
func (s *PlaceService) GetAllPlaces() ([]models.Place, error) {
	rows, err := s.db.Query("SELECT " + placeColumns + " FROM places ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaces(rows)
}

// GetPlaceByID retrieves a single listing by its ID.
func (s *PlaceService) GetPlaceByID(id string) (models.Place, error) {
	row := s.db.QueryRow("SELECT "+placeColumns+" FROM places WHERE id = ?", id)
	place, err := scanPlace(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Place{}, fmt.Errorf("place %s: %w", id, ErrNotFound)
		}
		return models.Place{}, err
	}
	return place, nil
}

// GetPlacesByOwner retrieves the listings owned by a user.
func (s *PlaceService) GetPlacesByOwner(ownerID string) ([]models.Place, error) {
	rows, err := s.db.Query("SELECT "+placeColumns+" FROM places WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaces(rows)
}

// CreatePlace inserts a new listing owned by ownerID. Any owner value on the
// incoming place is discarded; the caller's identity is always stamped.
func (s *PlaceService) CreatePlace(ownerID string, place models.Place) (models.Place, error) {
	place.ID = uuid.New().String()
	place.OwnerID = ownerID
	if err := place.PrepareForDB(); err != nil {
		return models.Place{}, err
	}

	stmt, err := s.db.Prepare(`INSERT INTO places
		(id, owner_id, title, address, description, extra_info, check_in, check_out, max_guests, price, photos_json, perks_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Place{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		place.ID, place.OwnerID, place.Title, place.Address, place.Description,
		place.ExtraInfo, place.CheckIn, place.CheckOut, place.MaxGuests,
		place.Price, place.PhotosJSON, place.PerksJSON,
	)
	if err != nil {
		return models.Place{}, err
	}

	return s.GetPlaceByID(place.ID)
}

// UpdatePlace applies new field values to an existing listing. The current
// row is loaded first and the ownership guard runs before any write, so a
// non-owner's edit is rejected without touching the stored listing.
func (s *PlaceService) UpdatePlace(actorID string, place models.Place) (models.Place, error) {
	current, err := s.GetPlaceByID(place.ID)
	if err != nil {
		return models.Place{}, err
	}

	if err := auth.AuthorizeOwner(&current, actorID); err != nil {
		return models.Place{}, err
	}

	if err := place.PrepareForDB(); err != nil {
		return models.Place{}, err
	}

	_, err = s.db.Exec(`UPDATE places SET
		title = ?, address = ?, description = ?, extra_info = ?, check_in = ?,
		check_out = ?, max_guests = ?, price = ?, photos_json = ?, perks_json = ?
		WHERE id = ?`,
		place.Title, place.Address, place.Description, place.ExtraInfo,
		place.CheckIn, place.CheckOut, place.MaxGuests, place.Price,
		place.PhotosJSON, place.PerksJSON, place.ID,
	)
	if err != nil {
		return models.Place{}, err
	}

	return s.GetPlaceByID(place.ID)
}

func collectPlaces(rows *sql.Rows) ([]models.Place, error) {
	places := []models.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}
