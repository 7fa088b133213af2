package service

import (
	"context"
	"strings"

	apperrors "github.com/sprmobility/pool-backend/internal/errors"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/repository"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, *models.Pool, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookingsByRider(ctx context.Context, riderID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	poolService PoolService
}

func NewBookingService(bookingRepo repository.BookingRepository, poolService PoolService) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		poolService: poolService,
	}
}

// CreateBooking records the booking intent and opens a pool for it. Pickup
// and dropoff must be non-empty after trimming, mirroring the form-level
// validation the booking flow has always had.
func (s *bookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, *models.Pool, error) {
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if pickup == "" || dropoff == "" {
		return nil, nil, apperrors.BadRequest("pickup and dropoff locations are required")
	}

	pool, err := s.poolService.CreatePool(ctx, &models.CreatePoolRequest{
		Destination:    dropoff,
		PickupLocation: pickup,
		DepartureTime:  req.DepartureTime,
		CreatedBy:      req.RiderID,
	})
	if err != nil {
		return nil, nil, err
	}

	booking := &models.Booking{
		RiderID:         req.RiderID,
		RiderName:       req.RiderName,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		DepartureTime:   req.DepartureTime,
		PoolID:          &pool.ID,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, nil, err
	}

	return booking, pool, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookingsByRider(ctx context.Context, riderID string) ([]models.Booking, error) {
	return s.bookingRepo.ListByRider(ctx, riderID)
}
