package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "bag:"
	defaultMaxRetries = 50
)

type redisStore struct {
	client     redis.UniversalClient
	prefix     string
	ttl        time.Duration
	maxRetries int
}

// NewRedisStore keeps each bag as a JSON value under bag:{sessionID}. The TTL is
// refreshed on every write, zero ttl keeps bags forever.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) (port.BagStore, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("ttl[%s] is negative", ttl)
	}

	return &redisStore{
		client:     client,
		prefix:     defaultKeyPrefix,
		ttl:        ttl,
		maxRetries: defaultMaxRetries,
	}, nil
}

func (s *redisStore) GetBag(ctx context.Context, sessionID string) (domain.Bag, error) {
	if sessionID == "" {
		return domain.Bag{}, errors.New("sessionID is empty")
	}

	return getBag(ctx, s.client, s.key(sessionID))
}

// UpdateBag is an optimistic read-modify-write: the key is watched and the write
// is retried from a fresh read when another writer got there first.
func (s *redisStore) UpdateBag(ctx context.Context, sessionID string, fn func(domain.Bag) (domain.Bag, error)) (domain.Bag, error) {
	var b domain.Bag

	if sessionID == "" {
		return b, errors.New("sessionID is empty")
	}
	if fn == nil {
		return b, errors.New("fn is nil")
	}

	key := s.key(sessionID)

	var updated domain.Bag

	txf := func(tx *redis.Tx) error {
		current, err := getBag(ctx, tx, key)
		if err != nil {
			return err
		}

		updated, err = fn(current.Clone())
		if err != nil {
			return err
		}

		if err := updated.Validate(); err != nil {
			return fmt.Errorf("bag.Validate: %w", err)
		}

		if updated.IsEmpty() {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				return pipe.Del(ctx, key).Err()
			})
			return err
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return pipe.Set(ctx, key, data, s.ttl).Err()
		})
		return err
	}

	for range s.maxRetries {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return b, err
	}

	return b, fmt.Errorf("bag[%s] update retries exhausted", sessionID)
}

func (s *redisStore) ClearBag(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID is empty")
	}

	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func (s *redisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func getBag(ctx context.Context, c redis.Cmdable, key string) (domain.Bag, error) {
	var b domain.Bag

	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return b, nil
	}
	if err != nil {
		return b, fmt.Errorf("client.Get: %w", err)
	}

	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return b, nil
}
