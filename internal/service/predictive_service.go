package service

import (
	"context"
	"log"
	"time"

	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/repository"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

// DemandEvent is one entry in the static demand calendar: on the given day,
// seed a pool towards the destination before anyone asks for it.
type DemandEvent struct {
	Name        string
	Destination string
	Pickup      string
}

// demandCalendar maps "MM-DD" to the event expected that day. Compiled in,
// same as fare tables elsewhere in the stack.
var demandCalendar = map[string]DemandEvent{
	"12-24": {Name: "Holiday Rush", Destination: "Central Station", Pickup: "SPR Hub, Tech Park Gate 2"},
	"12-25": {Name: "Holiday Rush", Destination: "Central Station", Pickup: "SPR Hub, Tech Park Gate 2"},
	"12-31": {Name: "New Year Countdown", Destination: "Riverfront Promenade", Pickup: "SPR Hub, Tech Park Gate 2"},
	"08-15": {Name: "Independence Day Parade", Destination: "Parade Grounds", Pickup: "SPR Hub, Tech Park Gate 2"},
}

type PredictiveService interface {
	// GeneratePools seeds at most one pool for the event matching now's
	// date. Idempotent per destination per day: if a pending pool to the
	// mapped destination already exists, nothing is created.
	GeneratePools(ctx context.Context, now time.Time) (int, error)

	// Start runs GeneratePools immediately and then on every tick until the
	// context is cancelled.
	Start(ctx context.Context, interval time.Duration)
}

type predictiveService struct {
	poolRepo      repository.PoolRepository
	capacity      int
	pricePerHead  float64
	departureHour int
	calendar      map[string]DemandEvent
}

func NewPredictiveService(poolRepo repository.PoolRepository, capacity int, pricePerHead float64, departureHour int) PredictiveService {
	return &predictiveService{
		poolRepo:      poolRepo,
		capacity:      capacity,
		pricePerHead:  pricePerHead,
		departureHour: departureHour,
		calendar:      demandCalendar,
	}
}

func (s *predictiveService) GeneratePools(ctx context.Context, now time.Time) (int, error) {
	event, ok := s.calendar[now.Format("01-02")]
	if !ok {
		return 0, nil
	}

	created := 0
	err := s.poolRepo.Update(ctx, func(pools []models.Pool) ([]models.Pool, error) {
		for i := range pools {
			if pools[i].Status == models.PoolStatusPending && pools[i].Destination == event.Destination {
				// Already seeded (or a rider beat us to it); keep exactly one.
				return pools, nil
			}
		}

		departure := time.Date(now.Year(), now.Month(), now.Day(), s.departureHour, 0, 0, 0, now.Location())
		eventName := event.Name
		pool := models.Pool{
			ID:             utils.NewPoolID(now),
			Destination:    event.Destination,
			PickupLocation: event.Pickup,
			DepartureTime:  departure,
			Capacity:       s.capacity,
			Passengers:     []models.Passenger{},
			PricePerHead:   s.pricePerHead,
			Status:         models.PoolStatusPending,
			Predictive:     true,
			EventName:      &eventName,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		created = 1
		return append(pools, pool), nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (s *predictiveService) Start(ctx context.Context, interval time.Duration) {
	run := func() {
		n, err := s.GeneratePools(ctx, time.Now())
		if err != nil {
			log.Printf("predictive generation failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("predictive generation seeded %d pool(s)", n)
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
