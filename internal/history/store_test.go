package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLatestStatusesPicksNewestPerItem(t *testing.T) {
	s := openStore(t)

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordStatus("M1", "OUT", "tanaka", "", base))
	require.NoError(t, s.RecordStatus("M1", "IN", "tanaka", "returned", base.Add(48*time.Hour)))
	require.NoError(t, s.RecordStatus("K9", "OUT", "sato", "", base.Add(time.Hour)))

	latest, err := s.LatestStatuses()
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "IN", latest["M1"].Text)
	assert.Equal(t, base.Add(48*time.Hour), latest["M1"].Date.UTC())
	assert.Equal(t, "OUT", latest["K9"].Text)
}

func TestRecordAuditIsAtomicAndStampsSession(t *testing.T) {
	s := openStore(t)

	at := time.Date(2024, 7, 2, 14, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordAudit("sess-1", []string{"M1", "M2", "K1"}, "yamada", at))

	for _, id := range []string{"M1", "M2", "K1"} {
		entries, err := s.History(id, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "audited", entries[0].Status)
		assert.Equal(t, "sess-1", entries[0].Session)
		assert.Equal(t, "yamada", entries[0].Actor)
	}
}

func TestRecordAuditEmptyBatchIsNoop(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.RecordAudit("sess-2", nil, "", time.Now()))

	latest, err := s.LatestStatuses()
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestHistoryNewestFirst(t *testing.T) {
	s := openStore(t)

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, status := range []string{"IN", "OUT", "IN"} {
		require.NoError(t, s.RecordStatus("M1", status, "", "", base.AddDate(0, 0, i)))
	}

	entries, err := s.History("M1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "IN", entries[0].Status)
	assert.Equal(t, "OUT", entries[1].Status)
	assert.True(t, entries[0].LoggedAt.After(entries[1].LoggedAt))
}

func TestTeflonRoundTrip(t *testing.T) {
	s := openStore(t)

	sent := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordTeflonSent("M7", sent))

	entries, err := s.TeflonHistory("M7")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sent", entries[0].State)
	assert.True(t, entries[0].ReturnedAt.IsZero())

	require.NoError(t, s.RecordTeflonReturned("M7", sent.AddDate(0, 0, 14)))

	entries, err = s.TeflonHistory("M7")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "returned", entries[0].State)
	assert.Equal(t, sent.AddDate(0, 0, 14), entries[0].ReturnedAt.UTC())
}
