package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/pkg/qrcode"
)

const (
	sequenceKeyPrefix = "qrseq:"
	// a prefix carries its date, so a couple of days is plenty
	sequenceTTL = 48 * time.Hour
)

// SeedFunc reports the highest sequence the datastore already holds for a
// prefix, so a cold or flushed Redis never reissues one of them.
type SeedFunc func(ctx context.Context, prefix string) (int64, error)

// Sequencer allocates tracking code sequences with Redis INCR.
type Sequencer struct {
	rdb  *redis.Client
	seed SeedFunc
	ttl  time.Duration
}

func NewSequencer(rdb *redis.Client, seed SeedFunc) *Sequencer {
	return &Sequencer{rdb: rdb, seed: seed, ttl: sequenceTTL}
}

func (s *Sequencer) Next(ctx context.Context, prefix string) (int, error) {
	key := sequenceKeyPrefix + prefix

	if s.seed != nil {
		exists, err := s.rdb.Exists(ctx, key).Result()
		if err != nil {
			return 0, fmt.Errorf("sequence exists %s: %w", key, err)
		}
		if exists == 0 {
			n, err := s.seed(ctx, prefix)
			if err != nil {
				return 0, err
			}
			if err := s.rdb.SetNX(ctx, key, n, s.ttl).Err(); err != nil {
				return 0, fmt.Errorf("sequence seed %s: %w", key, err)
			}
		}
	}

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence incr %s: %w", key, err)
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return 0, fmt.Errorf("sequence expire %s: %w", key, err)
	}
	if n > qrcode.MaxSequence {
		return 0, apperr.Conflict(fmt.Sprintf("daily sequence exhausted for %s", prefix))
	}
	return int(n), nil
}
