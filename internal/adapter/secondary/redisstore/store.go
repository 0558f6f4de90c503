package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/domain"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/domain/valueobject"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// tryBeginScript performs the atomic check-and-set of the claim. Missing and
// failed records are claimable; fulfilled is terminal; anything else means a
// concurrent run holds the claim. The in_progress value carries a TTL lease
// so a crashed run cannot wedge its session.
var tryBeginScript = redis.NewScript(`
local state = redis.call("GET", KEYS[1])
if not state or string.sub(state, 1, 6) == "failed" then
	redis.call("SET", KEYS[1], "in_progress", "EX", ARGV[1])
	return "begun"
end
if state == "fulfilled" then
	return "already_fulfilled"
end
return "already_in_progress"
`)

// Store implements secondary.FulfillmentStore on a Redis string per session.
// Values are "in_progress", "fulfilled", or "failed:<reason>".
type Store struct {
	client    *redis.Client
	prefix    string
	claimTTL  time.Duration
	recordTTL time.Duration
	logger    *zap.Logger
}

// NewStore creates a Redis-backed fulfillment record store.
func NewStore(client *redis.Client, claimTTL, recordTTL time.Duration, logger *zap.Logger) secondary.FulfillmentStore {
	if claimTTL <= 0 {
		claimTTL = domain.DefaultClaimTTL
	}
	if recordTTL <= 0 {
		recordTTL = domain.DefaultRecordTTL
	}
	return &Store{
		client:    client,
		prefix:    domain.RedisStateKeyPrefix,
		claimTTL:  claimTTL,
		recordTTL: recordTTL,
		logger:    logger.Named("redis-store"),
	}
}

func (s *Store) key(key valueobject.FulfillmentKey) string {
	return s.prefix + key.String()
}

// TryBegin atomically claims the record for one run.
func (s *Store) TryBegin(ctx context.Context, key valueobject.FulfillmentKey) (secondary.ClaimResult, error) {
	res, err := tryBeginScript.Run(ctx, s.client, []string{s.key(key)}, int(s.claimTTL.Seconds())).Text()
	if err != nil {
		return "", fmt.Errorf("claiming fulfillment record in redis: %w", err)
	}

	switch res {
	case "begun":
		return secondary.ClaimBegun, nil
	case "already_fulfilled":
		return secondary.ClaimAlreadyFulfilled, nil
	case "already_in_progress":
		return secondary.ClaimAlreadyInProgress, nil
	default:
		return "", fmt.Errorf("unexpected claim result %q", res)
	}
}

// MarkFulfilled writes the terminal fulfilled state.
func (s *Store) MarkFulfilled(ctx context.Context, key valueobject.FulfillmentKey) error {
	if err := s.client.Set(ctx, s.key(key), string(entity.RecordStateFulfilled), s.recordTTL).Err(); err != nil {
		return fmt.Errorf("marking record fulfilled in redis: %w", err)
	}
	return nil
}

// MarkFailed writes a claimable failed state with a reason.
func (s *Store) MarkFailed(ctx context.Context, key valueobject.FulfillmentKey, reason string) error {
	value := string(entity.RecordStateFailed) + ":" + reason
	if err := s.client.Set(ctx, s.key(key), value, s.recordTTL).Err(); err != nil {
		return fmt.Errorf("marking record failed in redis: %w", err)
	}
	return nil
}

// ListFailed scans the record keyspace and returns up to limit failed records.
func (s *Store) ListFailed(ctx context.Context, limit int) ([]entity.FulfillmentRecord, error) {
	var records []entity.FulfillmentRecord

	iter := s.client.Scan(ctx, 0, s.prefix+"*", int64(limit)).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		state, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			// Expired between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %q from redis: %w", key, err)
		}

		if !strings.HasPrefix(state, string(entity.RecordStateFailed)) {
			continue
		}

		reason := strings.TrimPrefix(state, string(entity.RecordStateFailed))
		reason = strings.TrimPrefix(reason, ":")

		records = append(records, entity.FulfillmentRecord{
			SessionID: strings.TrimPrefix(key, s.prefix),
			State:     entity.RecordStateFailed,
			Reason:    reason,
		})

		if len(records) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning fulfillment records in redis: %w", err)
	}

	return records, nil
}
