package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/sprmobility/pool-backend/internal/errors"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/repository/memory"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

type stubBookingRepo struct {
	bookings map[string]*models.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = utils.GenerateID()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return booking, nil
}

func (s *stubBookingRepo) ListByRider(ctx context.Context, riderID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.RiderID == riderID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBookingRepo) SetPool(ctx context.Context, id, poolID string) error {
	if b, ok := s.bookings[id]; ok {
		b.PoolID = &poolID
	}
	return nil
}

func TestCreateBookingOpensPool(t *testing.T) {
	poolRepo := memory.NewPoolRepository()
	poolSvc := NewPoolService(poolRepo, 4, 50)
	bookingRepo := newStubBookingRepo()
	svc := NewBookingService(bookingRepo, poolSvc)
	ctx := context.Background()

	booking, pool, err := svc.CreateBooking(ctx, &models.CreateBookingRequest{
		RiderID:         "rider-a",
		RiderName:       "Asha",
		PickupLocation:  "  Tech Park Gate 2 ",
		DropoffLocation: "Central Station",
		DepartureTime:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if booking.PoolID == nil || *booking.PoolID != pool.ID {
		t.Errorf("booking not linked to pool: PoolID = %v, pool = %s", booking.PoolID, pool.ID)
	}
	if booking.PickupLocation != "Tech Park Gate 2" {
		t.Errorf("pickup not trimmed: %q", booking.PickupLocation)
	}
	if pool.Destination != "Central Station" {
		t.Errorf("pool destination = %q, want dropoff location", pool.Destination)
	}
	if pool.CreatedBy == nil || *pool.CreatedBy != "rider-a" {
		t.Errorf("pool CreatedBy = %v, want rider-a", pool.CreatedBy)
	}

	pools, _ := poolRepo.Load(ctx)
	if len(pools) != 1 {
		t.Errorf("pool collection has %d pools, want 1", len(pools))
	}
}

func TestCreateBookingRequiresLocations(t *testing.T) {
	svc := NewBookingService(newStubBookingRepo(), NewPoolService(memory.NewPoolRepository(), 4, 50))

	tests := []struct {
		name    string
		pickup  string
		dropoff string
	}{
		{"empty pickup", "", "Central Station"},
		{"whitespace pickup", "   ", "Central Station"},
		{"empty dropoff", "Tech Park Gate 2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.CreateBooking(context.Background(), &models.CreateBookingRequest{
				RiderID:         "rider-a",
				RiderName:       "Asha",
				PickupLocation:  tt.pickup,
				DropoffLocation: tt.dropoff,
				DepartureTime:   time.Now().Add(time.Hour),
			})

			var apiErr *apperrors.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != "bad_request" {
				t.Errorf("CreateBooking() error = %v, want bad_request", err)
			}
		})
	}
}

func TestGetBookingNotFound(t *testing.T) {
	svc := NewBookingService(newStubBookingRepo(), NewPoolService(memory.NewPoolRepository(), 4, 50))

	_, err := svc.GetBooking(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrBookingNotFound) {
		t.Fatalf("GetBooking() error = %v, want ErrBookingNotFound", err)
	}
}
