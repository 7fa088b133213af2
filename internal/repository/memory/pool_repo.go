// Package memory provides an in-memory PoolRepository used by tests and
// local development. It mirrors the Redis repository's whole-document
// semantics behind a mutex.
package memory

import (
	"context"
	"sync"

	"github.com/sprmobility/pool-backend/internal/models"
)

type PoolRepository struct {
	mu    sync.RWMutex
	pools []models.Pool
}

func NewPoolRepository() *PoolRepository {
	return &PoolRepository{}
}

func (r *PoolRepository) Load(ctx context.Context) ([]models.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clonePools(r.pools), nil
}

func (r *PoolRepository) Replace(ctx context.Context, pools []models.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pools = clonePools(pools)
	return nil
}

func (r *PoolRepository) Update(ctx context.Context, fn func(pools []models.Pool) ([]models.Pool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(clonePools(r.pools))
	if err != nil {
		return err
	}
	r.pools = clonePools(next)
	return nil
}

// clonePools deep-copies the collection so callers never alias the stored
// slice.
func clonePools(pools []models.Pool) []models.Pool {
	if pools == nil {
		return nil
	}
	out := make([]models.Pool, len(pools))
	for i, p := range pools {
		out[i] = p
		if p.Passengers != nil {
			out[i].Passengers = append([]models.Passenger(nil), p.Passengers...)
		}
	}
	return out
}
