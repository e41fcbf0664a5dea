package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/domain"
)

// Connect initializes a Redis client from URL or host:port input.
// Supporting both formats keeps local/dev and container config paths simple.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

const grantKeyPrefix = "video:grant:"

// RedisGrantStore keeps playback grants in Redis with the retention
// window as native TTL, so expiry needs no sweep.
type RedisGrantStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisGrantStore(client *redis.Client, retention time.Duration) *RedisGrantStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RedisGrantStore{client: client, retention: retention}
}

func (s *RedisGrantStore) Put(ctx context.Context, grant domain.PlaybackGrant) error {
	raw, err := json.Marshal(grant)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, grantKeyPrefix+grant.JobID, raw, s.retention).Err()
}

func (s *RedisGrantStore) Get(ctx context.Context, jobID string) (*domain.PlaybackGrant, error) {
	raw, err := s.client.Get(ctx, grantKeyPrefix+jobID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var grant domain.PlaybackGrant
	if err := json.Unmarshal(raw, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// Cleanup is a no-op; Redis evicts grants via key TTL.
func (s *RedisGrantStore) Cleanup(_ context.Context, _ time.Time) error {
	return nil
}

const progressKeyPrefix = "video:progress:"

// RedisProgressStore shares watch progress across instances. Merge runs
// under WATCH so concurrent reports for the same key cannot clobber the
// monotonic fields.
type RedisProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProgressStore(client *redis.Client, ttl time.Duration) *RedisProgressStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisProgressStore{client: client, ttl: ttl}
}

func redisProgressKey(viewerID, videoID string) string {
	return progressKeyPrefix + viewerID + ":" + videoID
}

const mergeRetries = 5

func (s *RedisProgressStore) Merge(ctx context.Context, report domain.ProgressReport, now time.Time) (domain.WatchProgress, error) {
	key := redisProgressKey(report.ViewerID, report.VideoID)
	var merged domain.WatchProgress

	txf := func(tx *redis.Tx) error {
		var stored *domain.WatchProgress
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var record domain.WatchProgress
			if unmarshalErr := json.Unmarshal(raw, &record); unmarshalErr == nil {
				stored = &record
			}
		}
		merged = domain.MergeProgress(stored, report, now)
		payload, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < mergeRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return merged, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.WatchProgress{}, err
	}
	return domain.WatchProgress{}, redis.TxFailedErr
}

func (s *RedisProgressStore) Get(ctx context.Context, viewerID, videoID string) (*domain.WatchProgress, error) {
	raw, err := s.client.Get(ctx, redisProgressKey(viewerID, videoID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var record domain.WatchProgress
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Cleanup is a no-op; Redis evicts progress records via key TTL.
func (s *RedisProgressStore) Cleanup(_ context.Context, _ time.Time) error {
	return nil
}
