package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

const (
	guardKeyPrefix = "recycle:lock:" // one lock per user: recycle:lock:{user_id}
	guardTTL       = 10 * time.Second
)

// WriteGuard serializes recycling writes per user. Two rapid confirm taps
// from the same user must not race the two-step activity/profile write, so
// the second attempt is rejected while the first holds the lock.
type WriteGuard struct {
	client *redis.Client
}

func NewWriteGuard(client *redis.Client) *WriteGuard {
	return &WriteGuard{client: client}
}

// Acquire takes the per-user lock and returns a release function. Returns
// domain.ErrRecordInFlight when another write already holds it. The TTL
// bounds lock lifetime if the holder dies before releasing.
func (g *WriteGuard) Acquire(ctx context.Context, userID string) (func(), error) {
	key := g.guardKey(userID)
	token := uuid.New().String()

	ok, err := g.client.SetNX(ctx, key, token, guardTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire write guard: %w", err)
	}
	if !ok {
		return nil, domain.ErrRecordInFlight
	}

	release := func() {
		// Only delete the lock if we still own it; a slow holder must not
		// release a lock that expired and was re-acquired by someone else.
		current, err := g.client.Get(context.Background(), key).Result()
		if err != nil || current != token {
			return
		}
		g.client.Del(context.Background(), key)
	}

	return release, nil
}

func (g *WriteGuard) guardKey(userID string) string {
	return fmt.Sprintf("%s%s", guardKeyPrefix, userID)
}
