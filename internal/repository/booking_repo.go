package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sprmobility/pool-backend/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByRider(ctx context.Context, riderID string) ([]models.Booking, error)
	SetPool(ctx context.Context, id, poolID string) error
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	query := `
		INSERT INTO bookings (id, rider_id, rider_name, pickup_location,
			dropoff_location, departure_time, pool_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.RiderID, booking.RiderName, booking.PickupLocation,
		booking.DropoffLocation, booking.DepartureTime, booking.PoolID,
		booking.CreatedAt, booking.UpdatedAt)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT * FROM bookings WHERE id = $1`
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) ListByRider(ctx context.Context, riderID string) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `SELECT * FROM bookings WHERE rider_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &bookings, query, riderID)
	return bookings, err
}

func (r *bookingRepository) SetPool(ctx context.Context, id, poolID string) error {
	query := `UPDATE bookings SET pool_id = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, poolID, time.Now(), id)
	return err
}
