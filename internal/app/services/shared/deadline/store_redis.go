package deadline

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

// RedisDeadlineStore persists pending deadlines in a sorted set scored by
// fire time, with the entry body in a companion key per handle. A restart
// picks the set back up on the next sweep.
type RedisDeadlineStore struct {
	redis contracts.RedisRepository
}

func NewRedisDeadlineStore(redisRepository contracts.RedisRepository) *RedisDeadlineStore {
	return &RedisDeadlineStore{redis: redisRepository}
}

func (s *RedisDeadlineStore) Add(ctx context.Context, entry models.DeadlineEntry) error {
	if err := s.redis.Set(ctx, entryKey(entry.Handle), entry, 0); err != nil {
		return err
	}
	return s.redis.ZAdd(ctx, constvars.DeadlineSetRedisKey, float64(entry.FireAt.Unix()), entry.Handle)
}

func (s *RedisDeadlineStore) Remove(ctx context.Context, handle string) error {
	if err := s.redis.ZRem(ctx, constvars.DeadlineSetRedisKey, handle); err != nil {
		return err
	}
	return s.redis.Delete(ctx, entryKey(handle))
}

func (s *RedisDeadlineStore) Due(ctx context.Context, now time.Time) ([]models.DeadlineEntry, error) {
	handles, err := s.redis.ZRangeByScoreUpTo(ctx, constvars.DeadlineSetRedisKey, float64(now.Unix()))
	if err != nil {
		return nil, err
	}

	var due []models.DeadlineEntry
	for _, handle := range handles {
		raw, err := s.redis.Get(ctx, entryKey(handle))
		if err != nil {
			return due, err
		}
		if err := s.Remove(ctx, handle); err != nil {
			return due, err
		}
		if raw == "" {
			// Entry body already gone, cancelled concurrently.
			continue
		}
		var entry models.DeadlineEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		due = append(due, entry)
	}
	return due, nil
}

func entryKey(handle string) string {
	return constvars.DeadlineEntryRedisKeyPrefix + handle
}
