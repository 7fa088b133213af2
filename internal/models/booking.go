package models

import (
	"time"
)

// Booking is a recorded booking intent from the landing form. Unlike pools,
// bookings are stored per-row in Postgres.
type Booking struct {
	ID              string    `db:"id" json:"id"`
	RiderID         string    `db:"rider_id" json:"rider_id"`
	RiderName       string    `db:"rider_name" json:"rider_name"`
	PickupLocation  string    `db:"pickup_location" json:"pickup_location"`
	DropoffLocation string    `db:"dropoff_location" json:"dropoff_location"`
	DepartureTime   time.Time `db:"departure_time" json:"departure_time"`
	PoolID          *string   `db:"pool_id" json:"pool_id,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	RiderID         string    `json:"rider_id" validate:"required"`
	RiderName       string    `json:"rider_name" validate:"required,min=2,max=100"`
	PickupLocation  string    `json:"pickup_location" validate:"required"`
	DropoffLocation string    `json:"dropoff_location" validate:"required"`
	DepartureTime   time.Time `json:"departure_time" validate:"required"`
}

type BookingResponse struct {
	ID              string        `json:"id"`
	RiderID         string        `json:"rider_id"`
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation string        `json:"dropoff_location"`
	DepartureTime   time.Time     `json:"departure_time"`
	Pool            *PoolResponse `json:"pool,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		RiderID:         b.RiderID,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		DepartureTime:   b.DepartureTime,
		CreatedAt:       b.CreatedAt,
	}
}
