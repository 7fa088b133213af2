package models

import (
	"time"
)

// Pool status constants
const (
	PoolStatusPending   = "pending"
	PoolStatusAccepted  = "accepted"
	PoolStatusConfirmed = "confirmed"
)

// Passenger is one seat holder in a pool. Rider identity is always passed in
// explicitly; there is no session-level current user.
type Passenger struct {
	RiderID string `json:"rider_id"`
	Name    string `json:"name"`
}

// Pool is a shared ride with a fixed number of seats. The whole pool
// collection is persisted as a single versioned document, so Pool carries no
// db tags.
type Pool struct {
	ID             string      `json:"pool_id"`
	Destination    string      `json:"destination"`
	PickupLocation string      `json:"pickup_location"`
	DepartureTime  time.Time   `json:"departure_time"`
	Capacity       int         `json:"capacity"`
	Passengers     []Passenger `json:"passengers"`
	PricePerHead   float64     `json:"price_per_head"`
	Status         string      `json:"status"`
	DriverID       *string     `json:"driver_id,omitempty"`
	DriverName     *string     `json:"driver_name,omitempty"`
	CreatedBy      *string     `json:"created_by,omitempty"`
	Predictive     bool        `json:"predictive"`
	EventName      *string     `json:"event_name,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type CreatePoolRequest struct {
	Destination    string    `json:"destination" validate:"required,min=2,max=200"`
	PickupLocation string    `json:"pickup_location" validate:"required,min=2,max=200"`
	DepartureTime  time.Time `json:"departure_time" validate:"required"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

type JoinPoolRequest struct {
	RiderID string `json:"rider_id" validate:"required"`
	Name    string `json:"name" validate:"required,min=2,max=100"`
}

type ExitPoolRequest struct {
	RiderID string `json:"rider_id" validate:"required"`
}

type AssignDriverRequest struct {
	DriverID   string `json:"driver_id" validate:"required"`
	DriverName string `json:"driver_name" validate:"required,min=2,max=100"`
}

type PoolResponse struct {
	ID             string      `json:"pool_id"`
	Destination    string      `json:"destination"`
	PickupLocation string      `json:"pickup_location"`
	DepartureTime  time.Time   `json:"departure_time"`
	Capacity       int         `json:"capacity"`
	SeatsLeft      int         `json:"seats_left"`
	Passengers     []Passenger `json:"passengers"`
	PricePerHead   float64     `json:"price_per_head"`
	Status         string      `json:"status"`
	DriverID       *string     `json:"driver_id,omitempty"`
	DriverName     *string     `json:"driver_name,omitempty"`
	Predictive     bool        `json:"predictive"`
	EventName      *string     `json:"event_name,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (p *Pool) ToResponse() *PoolResponse {
	passengers := p.Passengers
	if passengers == nil {
		passengers = []Passenger{}
	}
	return &PoolResponse{
		ID:             p.ID,
		Destination:    p.Destination,
		PickupLocation: p.PickupLocation,
		DepartureTime:  p.DepartureTime,
		Capacity:       p.Capacity,
		SeatsLeft:      p.SeatsLeft(),
		Passengers:     passengers,
		PricePerHead:   p.PricePerHead,
		Status:         p.Status,
		DriverID:       p.DriverID,
		DriverName:     p.DriverName,
		Predictive:     p.Predictive,
		EventName:      p.EventName,
		CreatedAt:      p.CreatedAt,
	}
}

// IsFull reports whether every seat is taken.
func (p *Pool) IsFull() bool {
	return len(p.Passengers) >= p.Capacity
}

// SeatsLeft returns the number of open seats.
func (p *Pool) SeatsLeft() int {
	left := p.Capacity - len(p.Passengers)
	if left < 0 {
		return 0
	}
	return left
}

// HasPassenger reports whether the rider already holds a seat.
func (p *Pool) HasPassenger(riderID string) bool {
	for _, passenger := range p.Passengers {
		if passenger.RiderID == riderID {
			return true
		}
	}
	return false
}

// HasDriver reports whether a driver has accepted the pool.
func (p *Pool) HasDriver() bool {
	return p.DriverID != nil
}

// ReconcileStatus derives the lifecycle status from driver assignment and
// seat occupancy: confirmed iff a driver is set and the pool is full,
// accepted iff a driver is set with seats open, pending otherwise.
func (p *Pool) ReconcileStatus() {
	switch {
	case p.HasDriver() && p.IsFull():
		p.Status = PoolStatusConfirmed
	case p.HasDriver():
		p.Status = PoolStatusAccepted
	default:
		p.Status = PoolStatusPending
	}
}

// VisibleToRiders reports whether the pool shows up in rider listings.
func (p *Pool) VisibleToRiders() bool {
	return p.Status == PoolStatusPending || p.Status == PoolStatusAccepted
}

// VisibleToDrivers reports whether a driver may still accept the pool.
func (p *Pool) VisibleToDrivers() bool {
	return p.Status == PoolStatusPending && !p.HasDriver()
}
