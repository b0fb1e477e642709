package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Tiliavir/spotsecure/internal/model"
)

// DefaultNamespace prefixes the Redis key when none is configured.
const DefaultNamespace = "spotsecure"

// maxTxAttempts bounds optimistic retries when another writer touched the key
// between WATCH and EXEC.
const maxTxAttempts = 10

// ErrConflict is returned when a mutation kept losing to concurrent writers.
var ErrConflict = errors.New("storage: concurrent modification, giving up")

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis connects to Redis and verifies the connection.
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	const op = "storage.DialRedis"
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// RedisStore keeps the entry list as a JSON string under <namespace>:entries.
// Mutations run as WATCH/MULTI transactions, so concurrent instances cannot
// silently overwrite each other.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store using client. An empty namespace falls back to
// DefaultNamespace.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%s:%s", namespace, EntriesKey),
	}
}

// Key returns the Redis key holding the entry list.
func (s *RedisStore) Key() string {
	return s.key
}

// Load reads the entry list. A missing key is an empty list.
func (s *RedisStore) Load(ctx context.Context) ([]model.Entry, error) {
	const op = "storage.RedisStore.Load"
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entries, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: corrupt JSON in %s: %w", op, s.key, err)
	}
	return entries, nil
}

// Mutate applies fn inside an optimistic transaction, retrying when the key
// changed underneath. fn may therefore run more than once. Errors returned by
// fn are passed through unwrapped.
func (s *RedisStore) Mutate(ctx context.Context, fn MutateFunc) error {
	const op = "storage.RedisStore.Mutate"

	var fnErr error
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		entries := []model.Entry{}
		if err == nil {
			if entries, err = decode(data); err != nil {
				return fmt.Errorf("corrupt JSON in %s: %w", s.key, err)
			}
		}

		next, err := fn(entries)
		if err != nil {
			fnErr = err
			return err
		}
		payload, err := encode(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		fnErr = nil
		err := s.client.Watch(ctx, txf, s.key)
		switch {
		case err == nil:
			return nil
		case fnErr != nil:
			return fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, ErrConflict)
}

// Clear deletes the key.
func (s *RedisStore) Clear(ctx context.Context) error {
	const op = "storage.RedisStore.Clear"
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
