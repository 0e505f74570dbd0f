package ratelimit

import (
	"context"
	"time"

	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// UluleStore adapts ulule/limiter's in-memory store to the Store interface.
// Its window semantics match MemoryStore: the window opens on a client's
// first request and requests are rejected once the count exceeds the limit.
type UluleStore struct {
	instance *limiter.Limiter
}

// NewUluleStore creates a store backed by ulule/limiter.
func NewUluleStore(limit int, window time.Duration) *UluleStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	rate := limiter.Rate{Period: window, Limit: int64(limit)}
	return &UluleStore{instance: limiter.New(memorystore.NewStore(), rate)}
}

// Allow counts a request for clientID.
func (s *UluleStore) Allow(ctx context.Context, clientID string) (bool, error) {
	lctx, err := s.instance.Get(ctx, clientID)
	if err != nil {
		return false, err
	}
	return !lctx.Reached, nil
}
