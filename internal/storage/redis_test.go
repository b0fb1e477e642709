package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/storage"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	client, err := storage.DialRedis(context.Background(), storage.RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStoreKey(t *testing.T) {
	assert.Equal(t, "spotsecure:entries", storage.NewRedisStore(nil, "").Key())
	assert.Equal(t, "lot7:entries", storage.NewRedisStore(nil, "lot7").Key())
}

func TestRedisStoreMutateAndLoad(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	s := storage.NewRedisStore(client, "")

	entries, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, s.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		return append(entries, sampleEntries()...), nil
	}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), loaded)
	assert.True(t, mr.Exists("spotsecure:entries"))
}

func TestRedisStoreMutatePassesThroughFnError(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	s := storage.NewRedisStore(client, "")

	boom := errors.New("boom")
	err := s.Mutate(ctx, func([]model.Entry) ([]model.Entry, error) {
		return nil, boom
	})
	assert.Same(t, boom, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStoreMutateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	s := storage.NewRedisStore(client, "")
	other := storage.NewRedisStore(client, "")

	calls := 0
	err := s.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		calls++
		if calls == 1 {
			// A second instance writes between WATCH and EXEC.
			require.NoError(t, other.Mutate(ctx, func(in []model.Entry) ([]model.Entry, error) {
				return append(in, model.Entry{ID: "concurrent", Status: model.StatusActive}), nil
			}))
		}
		return append(entries, model.Entry{ID: "mine", Status: model.StatusActive}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2, "neither write may be lost")
	assert.Equal(t, "concurrent", loaded[0].ID)
	assert.Equal(t, "mine", loaded[1].ID)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	s := storage.NewRedisStore(client, "")
	require.NoError(t, mr.Set(s.Key(), "not-json"))

	_, err := s.Load(ctx)
	assert.Error(t, err)

	err = s.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		return entries, nil
	})
	assert.Error(t, err)
}

func TestRedisStoreClear(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	s := storage.NewRedisStore(client, "")
	require.NoError(t, s.Mutate(ctx, func([]model.Entry) ([]model.Entry, error) {
		return sampleEntries(), nil
	}))

	require.NoError(t, s.Clear(ctx))
	assert.False(t, mr.Exists(s.Key()))
}

func TestRedisStoreLoadError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer func() { _ = db.Close() }()

	s := storage.NewRedisStore(db, "")
	mock.ExpectGet(s.Key()).SetErr(errors.New("connection reset"))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreClearError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer func() { _ = db.Close() }()

	s := storage.NewRedisStore(db, "")
	mock.ExpectDel(s.Key()).SetErr(errors.New("readonly replica"))

	err := s.Clear(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialRedisInvalidAddr(t *testing.T) {
	client, err := storage.DialRedis(context.Background(), storage.RedisOptions{Addr: "127.0.0.1:1"})
	assert.Nil(t, client)
	assert.Error(t, err)
}
