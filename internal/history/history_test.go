package history

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/testutil"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndList(t *testing.T) {
	s := openStore(t, WithClock(testutil.NewStepClock(epoch, time.Second)))
	ctx := context.Background()

	first, err := s.Save(ctx, "req-1", "answer", "Qual o aeroporto mais movimentado?", "Guarulhos.")
	require.NoError(t, err)
	_, err = s.Save(ctx, "req-2", "clarification", "e em 2023?", "Desculpe.")
	require.NoError(t, err)

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "e em 2023?", got[0].Question)
	assert.Equal(t, "clarification", got[0].Kind)
	assert.Equal(t, epoch.Add(time.Second), got[0].Time)
	assert.Equal(t, first, got[1])
}

func TestSave_GeneratesUUIDv7(t *testing.T) {
	s := openStore(t)

	c, err := s.Save(context.Background(), "", "", "q", "r")
	require.NoError(t, err)

	id, err := uuid.Parse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestSave_FixedIDs(t *testing.T) {
	s := openStore(t, WithIDGenerator(testutil.NewFixedIDGenerator("row-1")))
	ctx := context.Background()

	c, err := s.Save(ctx, "", "", "q", "r")
	require.NoError(t, err)
	assert.Equal(t, "row-1", c.ID)

	_, err = s.Save(ctx, "", "", "q", "r")
	assert.Error(t, err, "duplicate primary key")
}

func TestList_Limit(t *testing.T) {
	s := openStore(t, WithClock(testutil.NewStepClock(epoch, time.Minute)))
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, "", "", q, "r")
		require.NoError(t, err)
	}

	got, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Question)
	assert.Equal(t, "b", got[1].Question)
}

func TestList_Empty(t *testing.T) {
	got, err := openStore(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Save(ctx, "", "", "q", "r")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "history.db"))
	assert.Error(t, err)
}

func TestSave_Concurrent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, "", "", "q", "r")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestClose_Idempotent(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}
