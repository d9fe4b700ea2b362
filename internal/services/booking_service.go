package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/airstay/airstay-api/internal/models"
)

// BookingServiceProvider defines the interface for booking services.
type BookingServiceProvider interface {
	CreateBooking(userID string, booking models.Booking) (models.Booking, error)
	GetBookingsByUser(userID string) ([]models.Booking, error)
}

// BookingService provides business logic for reservations.
type BookingService struct {
	db *sql.DB
}

// NewBookingService creates a new BookingService.
func NewBookingService(db *sql.DB) *BookingService {
	return &BookingService{db: db}
}

// CreateBooking inserts a new booking for userID. The booked place must
// exist; the booking user is always the caller, never a client-supplied value.
func (s *BookingService) CreateBooking(userID string, booking models.Booking) (models.Booking, error) {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM places WHERE id = ?", booking.PlaceID).Scan(&exists); err != nil {
		return models.Booking{}, err
	}
	if exists == 0 {
		return models.Booking{}, fmt.Errorf("place %s: %w", booking.PlaceID, ErrNotFound)
	}

	booking.ID = uuid.New().String()
	booking.UserID = userID

	stmt, err := s.db.Prepare(`INSERT INTO bookings
		(id, user_id, place_id, check_in, check_out, num_guests, name, phone, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Booking{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		booking.ID, booking.UserID, booking.PlaceID, booking.CheckIn,
		booking.CheckOut, booking.NumGuests, booking.Name, booking.Phone, booking.Price,
	)
	if err != nil {
		return models.Booking{}, err
	}

	// Pick up the store-assigned creation timestamp for the response.
	err = s.db.QueryRow("SELECT created_at FROM bookings WHERE id = ?", booking.ID).Scan(&booking.CreatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// GetBookingsByUser retrieves a user's bookings with the booked place
// expanded inline, newest first.
func (s *BookingService) GetBookingsByUser(userID string) ([]models.Booking, error) {
	rows, err := s.db.Query(`SELECT
		b.id, b.user_id, b.place_id, b.check_in, b.check_out, b.num_guests,
		b.name, b.phone, b.price, b.created_at,
		p.id, p.owner_id, p.title, p.address, p.description, p.extra_info,
		p.check_in, p.check_out, p.max_guests, p.price, p.photos_json, p.perks_json, p.created_at
		FROM bookings b
		JOIN places p ON p.id = b.place_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var p models.Place
		var bCheckIn, bCheckOut, bName, bPhone sql.NullString
		var pAddress, pDesc, pExtra, pCheckIn, pCheckOut, pPhotos, pPerks sql.NullString
		var bGuests, bPrice, pGuests, pPrice sql.NullInt64

		err := rows.Scan(
			&b.ID, &b.UserID, &b.PlaceID, &bCheckIn, &bCheckOut, &bGuests,
			&bName, &bPhone, &bPrice, &b.CreatedAt,
			&p.ID, &p.OwnerID, &p.Title, &pAddress, &pDesc, &pExtra,
			&pCheckIn, &pCheckOut, &pGuests, &pPrice, &pPhotos, &pPerks, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		b.CheckIn = bCheckIn.String
		b.CheckOut = bCheckOut.String
		b.NumGuests = int(bGuests.Int64)
		b.Name = bName.String
		b.Phone = bPhone.String
		b.Price = int(bPrice.Int64)

		p.Address = pAddress.String
		p.Description = pDesc.String
		p.ExtraInfo = pExtra.String
		p.CheckIn = pCheckIn.String
		p.CheckOut = pCheckOut.String
		p.MaxGuests = int(pGuests.Int64)
		p.Price = int(pPrice.Int64)
		p.PhotosJSON = pPhotos.String
		p.PerksJSON = pPerks.String
		p.PrepareForAPI()

		b.Place = &p
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
