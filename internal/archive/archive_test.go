package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/model"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", "salt")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHashIP(t *testing.T) {
	db := openTest(t)
	h := db.HashIP("203.0.113.9")
	assert.Len(t, h, 16)
	assert.Equal(t, h, db.HashIP("203.0.113.9"))
	assert.NotEqual(t, h, db.HashIP("203.0.113.10"))
	assert.NotContains(t, h, "203")
}

func TestStats(t *testing.T) {
	db := openTest(t)
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	require.NoError(t, db.RecordVisit("1.1.1.1", "ua", "/"))
	require.NoError(t, db.RecordVisit("1.1.1.1", "ua", "/api/projects"))
	require.NoError(t, db.RecordVisit("2.2.2.2", "ua", "/"))

	db.now = func() time.Time { return now.Add(-3 * 24 * time.Hour) }
	require.NoError(t, db.RecordVisit("3.3.3.3", "ua", "/"))
	db.now = func() time.Time { return now }

	pt := "consulting"
	require.NoError(t, db.SaveContact(model.Contact{
		ID: "c1", Name: "A", Email: "a@b.com", ProjectType: &pt, Message: "hi", CreatedAt: now,
	}))
	require.NoError(t, db.SaveContact(model.Contact{
		ID: "c2", Name: "B", Email: "b@b.com", Message: "yo", CreatedAt: now.Add(time.Minute),
	}))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(3), stats.VisitorsToday)
	assert.Equal(t, int64(4), stats.VisitorsThisWeek)
	assert.Equal(t, int64(2), stats.TotalContacts)
	assert.Len(t, stats.RecentVisitors, 4)

	require.Len(t, stats.RecentContacts, 2)
	assert.Equal(t, "c2", stats.RecentContacts[0].ID)
	assert.Nil(t, stats.RecentContacts[0].ProjectType)
	require.NotNil(t, stats.RecentContacts[1].ProjectType)
	assert.Equal(t, "consulting", *stats.RecentContacts[1].ProjectType)
}

func TestStats_UnreadableVisitRow(t *testing.T) {
	db := openTest(t)
	require.NoError(t, db.RecordVisit("1.1.1.1", "ua", "/"))
	_, err := db.db.Exec(`INSERT INTO visitors (hashed_ip, timestamp) VALUES ('abc', 'not a time')`)
	require.NoError(t, err)

	stats, err := db.Stats()
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestCleanup(t *testing.T) {
	db := openTest(t)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	db.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, db.RecordVisit("1.1.1.1", "ua", "/"))
	db.now = func() time.Time { return now }
	require.NoError(t, db.RecordVisit("2.2.2.2", "ua", "/"))

	n, err := db.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/data/archive.db"
	db, err := Open(path, "s")
	require.NoError(t, err)
	require.NoError(t, db.RecordVisit("1.1.1.1", "", "/"))
	require.NoError(t, db.Close())

	db, err = Open(path, "s")
	require.NoError(t, err)
	defer db.Close()
	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
}
