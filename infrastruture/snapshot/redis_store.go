package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	runKeyPrefix = "explorer:run:"
	runIndexKey  = "explorer:runs"
	lockSuffix   = ":lock"

	lockExpiry = 10 * time.Second
	lockTries  = 32
)

// RedisRunStore keeps run snapshots in redis with a TTL, indexed by update time in a sorted
// set, and locks runs with redsync.
type RedisRunStore struct {
	client    *redis.Client
	locker    *redsync.Redsync
	ttl       time.Duration
	lockTries int
}

// NewRedisRunStore initializes a RedisRunStore with the provided Redis client and TTL.
func NewRedisRunStore(client *redis.Client, ttlSeconds int) (*RedisRunStore, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive, got %d", ttlSeconds)
	}
	store := &RedisRunStore{
		client:    client,
		ttl:       time.Duration(ttlSeconds) * time.Second,
		lockTries: lockTries,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

func runKey(id uuid.UUID) string {
	return runKeyPrefix + id.String()
}

// Save writes the run and refreshes its TTL.
func (s *RedisRunStore) Save(ctx context.Context, run *dmn.Run) error {
	data, err := encode(run)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, runKey(run.ID), data, s.ttl)
		pipe.ZAdd(ctx, runIndexKey, redis.Z{Score: float64(run.UpdatedAt.UnixNano()), Member: run.ID.String()})
		return nil
	})
	return err
}

// Load returns the run or dmn.ErrRunNotFound once it expired or was deleted.
func (s *RedisRunStore) Load(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	data, err := s.client.Get(ctx, runKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dmn.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Delete removes the run and its index entry.
func (s *RedisRunStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, runKey(id))
		pipe.ZRem(ctx, runIndexKey, id.String())
		return nil
	})
	return err
}

// List returns the indexed runs, most recently updated first. Index entries of expired runs
// are dropped on the way.
func (s *RedisRunStore) List(ctx context.Context) ([]uuid.UUID, error) {
	members, err := s.client.ZRevRange(ctx, runIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			_ = s.client.ZRem(ctx, runIndexKey, member).Err()
			continue
		}
		exists, err := s.client.Exists(ctx, runKey(id)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			_ = s.client.ZRem(ctx, runIndexKey, member).Err()
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Lock takes the run's redsync mutex. The lock expires on its own if the holder dies.
// Giving up on a held lock, after the retries or when ctx is done, is dmn.ErrRunLocked.
func (s *RedisRunStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(runKey(id)+lockSuffix, redsync.WithExpiry(lockExpiry), redsync.WithTries(s.lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		if lockContended(err) {
			return nil, fmt.Errorf("%w: %w", dmn.ErrRunLocked, err)
		}
		return nil, err
	}
	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}

func lockContended(err error) bool {
	var taken *redsync.ErrTaken
	return errors.As(err, &taken) ||
		errors.Is(err, redsync.ErrFailed) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
