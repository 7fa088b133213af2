package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/sprmobility/pool-backend/internal/errors"
	"github.com/sprmobility/pool-backend/internal/models"
)

const (
	poolsKey = "spr:pools"

	// schemaVersion is embedded in the persisted document so the payload can
	// evolve without guessing.
	schemaVersion = 1

	// maxUpdateRetries bounds WATCH retries when concurrent writers race on
	// the shared document.
	maxUpdateRetries = 5
)

// PoolRepository stores the whole pool collection as one versioned document.
// Every mutation rewrites the full collection; Update does so inside an
// optimistic transaction so concurrent writers cannot lose each other's
// changes.
type PoolRepository interface {
	Load(ctx context.Context) ([]models.Pool, error)
	Replace(ctx context.Context, pools []models.Pool) error
	Update(ctx context.Context, fn func(pools []models.Pool) ([]models.Pool, error)) error
}

type poolDocument struct {
	Version int           `json:"version"`
	Pools   []models.Pool `json:"pools"`
}

func encodeDocument(pools []models.Pool) ([]byte, error) {
	if pools == nil {
		pools = []models.Pool{}
	}
	return json.Marshal(poolDocument{Version: schemaVersion, Pools: pools})
}

func decodeDocument(data []byte) ([]models.Pool, error) {
	var doc poolDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt pool document: %w", err)
	}
	if doc.Version != schemaVersion {
		return nil, fmt.Errorf("unsupported pool document version %d", doc.Version)
	}
	return doc.Pools, nil
}

type redisPoolRepository struct {
	rdb *redis.Client
}

func NewPoolRepository(rdb *redis.Client) PoolRepository {
	return &redisPoolRepository{rdb: rdb}
}

func (r *redisPoolRepository) Load(ctx context.Context) ([]models.Pool, error) {
	data, err := r.rdb.Get(ctx, poolsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

func (r *redisPoolRepository) Replace(ctx context.Context, pools []models.Pool) error {
	data, err := encodeDocument(pools)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}
	if err := r.rdb.Set(ctx, poolsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}
	return nil
}

func (r *redisPoolRepository) Update(ctx context.Context, fn func(pools []models.Pool) ([]models.Pool, error)) error {
	txn := func(tx *redis.Tx) error {
		var pools []models.Pool

		data, err := tx.Get(ctx, poolsKey).Bytes()
		switch {
		case err == redis.Nil:
			// First write ever; start from an empty collection.
		case err != nil:
			return err
		default:
			pools, err = decodeDocument(data)
			if err != nil {
				return err
			}
		}

		next, err := fn(pools)
		if err != nil {
			return err
		}

		out, err := encodeDocument(next)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, poolsKey, out, 0)
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
		}
		return nil
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.rdb.Watch(ctx, txn, poolsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: too many concurrent writers", apperrors.ErrStorageWrite)
}
