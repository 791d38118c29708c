package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStoreAddAndLatest(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.Latest("/data")
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := Record{
		Root:       "/data",
		SessionID:  "s-1",
		TotalBytes: 100,
		TotalItems: 3,
		Elapsed:    250 * time.Millisecond,
		ScannedAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.Add(first))

	second := first
	second.SessionID = "s-2"
	second.TotalBytes = 150
	second.ErrorCount = 1
	second.ScannedAt = time.Now()
	require.NoError(t, store.Add(second))

	latest, err = store.Latest("/data")
	require.NoError(t, err)
	require.NotNil(t, latest)

	assert.Equal(t, "s-2", latest.SessionID)
	assert.Equal(t, int64(150), latest.TotalBytes)
	assert.Equal(t, int64(1), latest.ErrorCount)
	assert.Equal(t, 250*time.Millisecond, latest.Elapsed)
}

func TestStoreListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Add(Record{
			Root:       "/data",
			SessionID:  string(rune('a' + i)),
			TotalBytes: int64(i),
			ScannedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	require.NoError(t, store.Add(Record{Root: "/other", SessionID: "x", ScannedAt: time.Now()}))

	records, err := store.List("/data", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "c", records[0].SessionID)
	assert.Equal(t, "b", records[1].SessionID)
}
