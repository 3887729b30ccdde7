package database_test

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"community-bot/database"
	"community-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestClaimInitialGrant(t *testing.T) {
	db := openTestDB(t)

	granted, err := database.ClaimInitialGrant(db, "u1", 50000)
	require.NoError(t, err)
	assert.True(t, granted)

	balance, err := database.GetBalance(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)

	// Second claim is a no-op.
	granted, err = database.ClaimInitialGrant(db, "u1", 50000)
	require.NoError(t, err)
	assert.False(t, granted)

	balance, err = database.GetBalance(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)
}

func TestClaimInitialGrantConcurrent(t *testing.T) {
	db := openTestDB(t)

	const claims = 8
	results := make(chan bool, claims)
	var wg sync.WaitGroup
	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted, err := database.ClaimInitialGrant(db, "u1", 50000)
			assert.NoError(t, err)
			results <- granted
		}()
	}
	wg.Wait()
	close(results)

	grantedCount := 0
	for granted := range results {
		if granted {
			grantedCount++
		}
	}
	assert.Equal(t, 1, grantedCount)

	balance, err := database.GetBalance(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)
}

func TestAddBalance(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, database.AddBalance(db, "u1", 100))
	}

	balance, err := database.GetBalance(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance)

	// A prior claim does not change how incremental grants add up.
	granted, err := database.ClaimInitialGrant(db, "u2", 50000)
	require.NoError(t, err)
	require.True(t, granted)
	for i := 0; i < 3; i++ {
		require.NoError(t, database.AddBalance(db, "u2", 100))
	}
	balance, err = database.GetBalance(db, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(50300), balance)
}

func TestClaimAfterIncrementalGrants(t *testing.T) {
	db := openTestDB(t)

	// Incremental credits do not count as a claim.
	require.NoError(t, database.AddBalance(db, "u1", 100))

	granted, err := database.ClaimInitialGrant(db, "u1", 50000)
	require.NoError(t, err)
	assert.True(t, granted)

	balance, err := database.GetBalance(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50100), balance)

	granted, err = database.ClaimInitialGrant(db, "u1", 50000)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestGetBalanceMissingUser(t *testing.T) {
	db := openTestDB(t)

	balance, err := database.GetBalance(db, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestUpsertThreadMappingSupersedes(t *testing.T) {
	db := openTestDB(t)

	_, exists, err := database.GetThreadMapping(db, "g1", "a1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, database.UpsertThreadMapping(db, "g1", "a1", "t1"))
	threadID, exists, err := database.GetThreadMapping(db, "g1", "a1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "t1", threadID)

	// Replacing the mapping leaves a single row pointing at the new thread.
	require.NoError(t, database.UpsertThreadMapping(db, "g1", "a1", "t2"))
	threadID, exists, err = database.GetThreadMapping(db, "g1", "a1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "t2", threadID)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM thread_mappings`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestCountActivitySince(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().Unix()
	timestamps := []int64{now, now - 100, now - 100000}
	for _, ts := range timestamps {
		require.NoError(t, database.InsertActivity(db, models.ActivityRecord{
			UserID:    "u1",
			Source:    "discord",
			Action:    "message",
			ChannelID: "c1",
			Timestamp: ts,
		}))
	}

	count, err := database.CountActivitySince(db, "u1", now-1000)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = database.CountActivitySince(db, "u2", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestActiveUserCounts(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().Unix()
	for i := 0; i < 3; i++ {
		require.NoError(t, database.InsertActivity(db, models.ActivityRecord{
			UserID: "u1", Source: "discord", Action: "message", ChannelID: "c1", Timestamp: now,
		}))
	}
	require.NoError(t, database.InsertActivity(db, models.ActivityRecord{
		UserID: "u2", Source: "discord", Action: "message", ChannelID: "c1", Timestamp: now - 100000,
	}))

	counts, err := database.ActiveUserCounts(db, now-1000)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"u1": 3}, counts)
}
