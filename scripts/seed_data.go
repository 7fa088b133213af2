//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sprmobility/pool-backend/internal/config"
	"github.com/sprmobility/pool-backend/internal/database"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/repository"
	"github.com/sprmobility/pool-backend/internal/service"
)

var riders = []models.Passenger{
	{RiderID: "rider-asha", Name: "Asha Kumar"},
	{RiderID: "rider-ben", Name: "Ben Thomas"},
	{RiderID: "rider-chitra", Name: "Chitra Rao"},
	{RiderID: "rider-dev", Name: "Dev Patel"},
	{RiderID: "rider-esha", Name: "Esha Singh"},
}

var routes = []struct {
	destination string
	pickup      string
}{
	{"Central Station", "SPR Hub, Tech Park Gate 2"},
	{"Airport Terminal 1", "SPR Hub, Tech Park Gate 2"},
	{"City Mall", "Lakeside Apartments"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	poolRepo := repository.NewPoolRepository(redis.Client)
	poolSvc := service.NewPoolService(poolRepo, cfg.PoolCapacity, cfg.PricePerHead)
	ctx := context.Background()

	for i, route := range routes {
		pool, err := poolSvc.CreatePool(ctx, &models.CreatePoolRequest{
			Destination:    route.destination,
			PickupLocation: route.pickup,
			DepartureTime:  time.Now().Add(time.Duration(i+1) * time.Hour),
			CreatedBy:      riders[i].RiderID,
		})
		if err != nil {
			log.Fatalf("Failed to create pool: %v", err)
		}

		// Stagger occupancy so every status shows up in listings.
		for _, rider := range riders[:i+1] {
			if _, err := poolSvc.JoinPool(ctx, pool.ID, rider.RiderID, rider.Name); err != nil {
				log.Fatalf("Failed to join pool: %v", err)
			}
		}

		if i%2 == 0 {
			if _, err := poolSvc.AssignDriver(ctx, pool.ID, fmt.Sprintf("driver-%d", i+1), "Seed Driver"); err != nil {
				log.Fatalf("Failed to assign driver: %v", err)
			}
		}

		fmt.Printf("Seeded pool %s -> %s (%d riders)\n", pool.ID, route.destination, i+1)
	}

	fmt.Println("Done.")
}
