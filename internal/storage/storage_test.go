package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/storage"
)

func sampleEntries() []model.Entry {
	return []model.Entry{
		{ID: "e1", Owner: "Jane", LicensePlate: "AB-12-34", ParkingType: model.Paid, Status: model.StatusActive},
		{ID: "e2", Owner: "John", LicensePlate: "12-34-AB", ParkingType: model.Free, Status: model.StatusActive},
	}
}

func TestFileStoreLoadNotExist(t *testing.T) {
	s := storage.NewFileStore(t.TempDir())
	entries, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFileStoreMutateAndLoad(t *testing.T) {
	ctx := context.Background()
	s := storage.NewFileStore(filepath.Join(t.TempDir(), "nested"))

	err := s.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		return append(entries, sampleEntries()...), nil
	})
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), loaded, "order and fields must survive a round trip")

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not be left behind")
}

func TestFileStoreMutateErrorDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	s := storage.NewFileStore(t.TempDir())
	require.NoError(t, s.Mutate(ctx, func([]model.Entry) ([]model.Entry, error) {
		return sampleEntries(), nil
	}))

	boom := errors.New("boom")
	err := s.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestFileStoreCorruptBackup(t *testing.T) {
	base := t.TempDir()
	s := storage.NewFileStore(base)
	require.NoError(t, os.WriteFile(s.Path(), []byte("[{bad json"), 0o600))

	_, err := s.Load(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(s.Path() + ".corrupt")
	assert.NoError(t, statErr, "expected backup file to exist after corrupt JSON")
}

func TestFileStoreNullDocument(t *testing.T) {
	s := storage.NewFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte("null"), 0o600))

	entries, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s := storage.NewFileStore(t.TempDir())

	require.NoError(t, s.Clear(ctx), "clearing a missing file is not an error")

	require.NoError(t, s.Mutate(ctx, func([]model.Entry) ([]model.Entry, error) {
		return sampleEntries(), nil
	}))
	require.NoError(t, s.Clear(ctx))

	entries, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
