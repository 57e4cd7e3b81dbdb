// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/locforge/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	runs := []types.RunSummary{
		{Mode: types.ModeLine, Outcome: types.OutcomeCompleted, Units: 3, Records: 3, StartedAt: started, Duration: 40 * time.Millisecond},
		{Mode: types.ModeTable, Outcome: types.OutcomeCancelled, Units: 50000, Records: 20000, Skipped: 12, Truncated: true, StartedAt: started.Add(time.Minute), Duration: 2 * time.Second},
		{Mode: types.ModeTable, Outcome: types.OutcomeFailed, Message: "reading table: permission denied", StartedAt: started.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		require.NoError(t, s.Record(ctx, r))
	}

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, types.OutcomeFailed, got[0].Outcome)
	assert.Equal(t, "reading table: permission denied", got[0].Message)

	assert.Equal(t, types.OutcomeCancelled, got[1].Outcome)
	assert.True(t, got[1].Truncated)
	assert.Equal(t, 20000, got[1].Records)
	assert.Equal(t, 2*time.Second, got[1].Duration)

	assert.Equal(t, types.ModeLine, got[2].Mode)
	assert.Equal(t, started, got[2].StartedAt)
}

func TestStore_RecentLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, types.RunSummary{
			Mode: types.ModeLine, Outcome: types.OutcomeCompleted, StartedAt: time.Now(),
		}))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_EmptyLedger(t *testing.T) {
	s := openStore(t)
	got, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), types.RunSummary{
		Mode: types.ModeTable, Outcome: types.OutcomeCompleted, Records: 7, StartedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Records)
}
