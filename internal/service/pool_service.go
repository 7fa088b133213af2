package service

import (
	"context"
	"time"

	apperrors "github.com/sprmobility/pool-backend/internal/errors"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/repository"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

type PoolService interface {
	CreatePool(ctx context.Context, req *models.CreatePoolRequest) (*models.Pool, error)
	JoinPool(ctx context.Context, poolID, riderID, riderName string) (*models.Pool, error)
	ExitPool(ctx context.Context, poolID, riderID string) error
	AssignDriver(ctx context.Context, poolID, driverID, driverName string) (*models.Pool, error)
	GetPool(ctx context.Context, poolID string) (*models.Pool, error)
	ListOpenPools(ctx context.Context) ([]models.Pool, error)
	ListUnassignedPools(ctx context.Context) ([]models.Pool, error)
	FindJoinedPool(ctx context.Context, riderID string) (*models.Pool, error)
}

type poolService struct {
	poolRepo     repository.PoolRepository
	capacity     int
	pricePerHead float64
}

func NewPoolService(poolRepo repository.PoolRepository, capacity int, pricePerHead float64) PoolService {
	return &poolService{
		poolRepo:     poolRepo,
		capacity:     capacity,
		pricePerHead: pricePerHead,
	}
}

func (s *poolService) CreatePool(ctx context.Context, req *models.CreatePoolRequest) (*models.Pool, error) {
	now := time.Now()
	pool := models.Pool{
		ID:             utils.NewPoolID(now),
		Destination:    req.Destination,
		PickupLocation: req.PickupLocation,
		DepartureTime:  req.DepartureTime,
		Capacity:       s.capacity,
		Passengers:     []models.Passenger{},
		PricePerHead:   s.pricePerHead,
		Status:         models.PoolStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.CreatedBy != "" {
		createdBy := req.CreatedBy
		pool.CreatedBy = &createdBy
	}

	err := s.poolRepo.Update(ctx, func(pools []models.Pool) ([]models.Pool, error) {
		return append(pools, pool), nil
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *poolService) JoinPool(ctx context.Context, poolID, riderID, riderName string) (*models.Pool, error) {
	var joined models.Pool

	err := s.poolRepo.Update(ctx, func(pools []models.Pool) ([]models.Pool, error) {
		i := findPool(pools, poolID)
		if i < 0 {
			return nil, apperrors.ErrPoolNotFound
		}
		pool := &pools[i]

		if pool.IsFull() {
			return nil, apperrors.ErrPoolFull
		}
		if pool.HasPassenger(riderID) {
			return nil, apperrors.ErrAlreadyJoined
		}

		pool.Passengers = append(pool.Passengers, models.Passenger{RiderID: riderID, Name: riderName})
		pool.ReconcileStatus()
		pool.UpdatedAt = time.Now()

		joined = *pool
		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return &joined, nil
}

func (s *poolService) ExitPool(ctx context.Context, poolID, riderID string) error {
	return s.poolRepo.Update(ctx, func(pools []models.Pool) ([]models.Pool, error) {
		i := findPool(pools, poolID)
		if i < 0 {
			return nil, apperrors.ErrPoolNotFound
		}
		pool := &pools[i]

		if !pool.HasPassenger(riderID) {
			return nil, apperrors.ErrNotAMember
		}

		passengers := pool.Passengers[:0]
		for _, passenger := range pool.Passengers {
			if passenger.RiderID != riderID {
				passengers = append(passengers, passenger)
			}
		}
		pool.Passengers = passengers

		// An empty pool is deleted outright, never kept around.
		if len(pool.Passengers) == 0 {
			return append(pools[:i], pools[i+1:]...), nil
		}

		// A seat opened, so a confirmed pool drops back to accepted. The
		// driver stays assigned.
		pool.ReconcileStatus()
		pool.UpdatedAt = time.Now()
		return pools, nil
	})
}

func (s *poolService) AssignDriver(ctx context.Context, poolID, driverID, driverName string) (*models.Pool, error) {
	var assigned models.Pool

	err := s.poolRepo.Update(ctx, func(pools []models.Pool) ([]models.Pool, error) {
		i := findPool(pools, poolID)
		if i < 0 {
			return nil, apperrors.ErrPoolNotFound
		}
		pool := &pools[i]

		if pool.HasDriver() {
			return nil, apperrors.ErrDriverAlreadyAssigned
		}

		pool.DriverID = &driverID
		pool.DriverName = &driverName
		pool.ReconcileStatus()
		pool.UpdatedAt = time.Now()

		assigned = *pool
		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return &assigned, nil
}

func (s *poolService) GetPool(ctx context.Context, poolID string) (*models.Pool, error) {
	pools, err := s.poolRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := findPool(pools, poolID); i >= 0 {
		return &pools[i], nil
	}
	return nil, apperrors.ErrPoolNotFound
}

// ListOpenPools returns the pools a rider can still see: pending or accepted.
// Confirmed pools are full and hidden.
func (s *poolService) ListOpenPools(ctx context.Context) ([]models.Pool, error) {
	return s.filter(ctx, func(p *models.Pool) bool { return p.VisibleToRiders() })
}

// ListUnassignedPools returns the pools a driver may accept: pending with no
// driver yet.
func (s *poolService) ListUnassignedPools(ctx context.Context) ([]models.Pool, error) {
	return s.filter(ctx, func(p *models.Pool) bool { return p.VisibleToDrivers() })
}

// FindJoinedPool returns the first pool the rider holds a seat in, or nil.
func (s *poolService) FindJoinedPool(ctx context.Context, riderID string) (*models.Pool, error) {
	pools, err := s.poolRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pools {
		if pools[i].HasPassenger(riderID) {
			return &pools[i], nil
		}
	}
	return nil, nil
}

func (s *poolService) filter(ctx context.Context, keep func(*models.Pool) bool) ([]models.Pool, error) {
	pools, err := s.poolRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Pool, 0, len(pools))
	for i := range pools {
		if keep(&pools[i]) {
			out = append(out, pools[i])
		}
	}
	return out, nil
}

func findPool(pools []models.Pool, poolID string) int {
	for i := range pools {
		if pools[i].ID == poolID {
			return i
		}
	}
	return -1
}
