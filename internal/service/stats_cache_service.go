package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-booking/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisStatsKey holds the cached aggregate counts as a hash
	RedisStatsKey = "clinic:stats"
	// RedisStatsGenerationKey is bumped on every invalidation
	RedisStatsGenerationKey = "clinic:stats:gen"

	fieldTotalPatients     = "total_patients"
	fieldTotalAppointments = "total_appointments"
	fieldStatusPrefix      = "status:"
)

// Stats are the aggregate counts served by the stats endpoint.
type Stats struct {
	TotalPatients        int64
	TotalAppointments    int64
	AppointmentsByStatus map[string]int64
}

// StatsCacheService caches Stats in Redis until the TTL expires or a
// mutation invalidates them. A nil redis client disables the cache: Get
// always misses and Set/Invalidate are no-ops.
type StatsCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewStatsCacheService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *StatsCacheService {
	return &StatsCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Enabled reports whether a Redis client is configured.
func (s *StatsCacheService) Enabled() bool {
	return s != nil && s.redisClient != nil
}

// Get returns cached stats; ok is false on a miss.
func (s *StatsCacheService) Get(ctx context.Context) (*Stats, bool, error) {
	if !s.Enabled() {
		return nil, false, nil
	}

	values, err := s.redisClient.HGetAll(ctx, RedisStatsKey).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read stats cache: %w", err)
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	stats := &Stats{AppointmentsByStatus: make(map[string]int64)}
	for field, raw := range values {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.log.Warnf("Discarding malformed stats cache field %s=%q", field, raw)
			return nil, false, nil
		}
		switch {
		case field == fieldTotalPatients:
			stats.TotalPatients = n
		case field == fieldTotalAppointments:
			stats.TotalAppointments = n
		case strings.HasPrefix(field, fieldStatusPrefix):
			status := entity.AppointmentStatus(strings.TrimPrefix(field, fieldStatusPrefix))
			if status.IsValid() {
				stats.AppointmentsByStatus[string(status)] = n
			}
		}
	}

	return stats, true, nil
}

// Generation returns the current invalidation counter. Read it before
// counting and hand it to Set.
func (s *StatsCacheService) Generation(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}

	gen, err := s.redisClient.Get(ctx, RedisStatsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read stats generation: %w", err)
	}
	return gen, nil
}

// Set stores stats with the configured TTL, unless an Invalidate ran since
// generation was read. Stale counts are dropped silently.
func (s *StatsCacheService) Set(ctx context.Context, stats *Stats, generation int64) error {
	if !s.Enabled() || stats == nil {
		return nil
	}

	fields := map[string]interface{}{
		fieldTotalPatients:     stats.TotalPatients,
		fieldTotalAppointments: stats.TotalAppointments,
	}
	for status, n := range stats.AppointmentsByStatus {
		fields[fieldStatusPrefix+status] = n
	}

	err := s.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, RedisStatsGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleStats
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, RedisStatsKey)
			pipe.HSet(ctx, RedisStatsKey, fields)
			pipe.Expire(ctx, RedisStatsKey, s.ttl)
			return nil
		})
		return err
	}, RedisStatsGenerationKey)

	switch {
	case err == nil:
		s.log.Debugf("Cached stats for %v", s.ttl)
		return nil
	case errors.Is(err, errStaleStats), errors.Is(err, redis.TxFailedErr):
		s.log.Debug("Skipped caching stats counted before an invalidation")
		return nil
	default:
		return fmt.Errorf("write stats cache: %w", err)
	}
}

var errStaleStats = errors.New("stats generation changed")

// Invalidate drops cached stats and bumps the generation so in-flight
// counts are not cached. Failures are logged, not returned: the entry still
// expires after the TTL.
func (s *StatsCacheService) Invalidate(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Del(ctx, RedisStatsKey)
	pipe.Incr(ctx, RedisStatsGenerationKey)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to invalidate stats cache (non-fatal): %+v", err)
	}
}
