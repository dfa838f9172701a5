package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"courtside/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type advanceResult struct {
	advanced bool
	err      error
}

func TestAdvanceCheckIn_ConcurrentScansSingleTransition(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)

	player := playerModel{BookingID: 1, Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, db.Create(&player).Error)

	const scans = 8
	var wg sync.WaitGroup
	results := make(chan advanceResult, scans)
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AdvanceCheckIn(context.Background(), player.ID, domain.CheckStateRegistered, time.Now())
			results <- advanceResult{advanced: ok, err: err}
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for r := range results {
		require.NoError(t, r.err)
		if r.advanced {
			won++
		}
	}
	assert.Equal(t, 1, won)

	got, err := repo.GetByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckStateIn, got.CheckInCount)
	assert.True(t, got.IsIn)
	assert.NotNil(t, got.LastCheckIn)

	// exactly one audit row for the single transition
	logs, err := repo.ListLogs(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, domain.ActionCheckIn, logs[0].Action)
}

func TestAdvanceCheckIn_SecondScanChecksOut(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)

	player := playerModel{BookingID: 1, Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, db.Create(&player).Error)

	ok, err := repo.AdvanceCheckIn(context.Background(), player.ID, domain.CheckStateRegistered, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.AdvanceCheckIn(context.Background(), player.ID, domain.CheckStateIn, time.Now())
	assert.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckStateOut, got.CheckInCount)
	assert.False(t, got.IsIn)
	assert.NotNil(t, got.LastCheckOut)

	// a stale retry of the first transition finds the counter moved on
	ok, err = repo.AdvanceCheckIn(context.Background(), player.ID, domain.CheckStateRegistered, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)

	logs, err := repo.ListLogs(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
