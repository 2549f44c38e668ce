package dal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestSQLite_AddRemoveMember(t *testing.T) {
	ctx := t.Context()
	store := newTestSQLite(t)

	require.NoError(t, store.AddMember(ctx, ListAttendance, 1001))

	member, err := store.IsMember(ctx, ListAttendance, 1001)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = store.IsMember(ctx, ListClassReminders, 1001)
	require.NoError(t, err)
	assert.False(t, member, "membership must not leak into other lists")

	require.NoError(t, store.RemoveMember(ctx, ListAttendance, 1001))

	member, err = store.IsMember(ctx, ListAttendance, 1001)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestSQLite_AddMember_Idempotent(t *testing.T) {
	ctx := t.Context()
	store := newTestSQLite(t)

	joined := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return joined }
	require.NoError(t, store.AddMember(ctx, ListAttendance, 1001))

	store.now = func() time.Time { return joined.Add(48 * time.Hour) }
	require.NoError(t, store.AddMember(ctx, ListAttendance, 1001))

	members, err := store.Members(ctx, ListAttendance)
	require.NoError(t, err)
	assert.Equal(t, []int64{1001}, members)

	var row membershipRow
	require.NoError(t, store.db.First(&row, "list = ? AND chat_id = ?", ListAttendance, int64(1001)).Error)
	assert.Equal(t, joined, row.JoinedAt.UTC())
}

func TestSQLite_RemoveMember_Absent(t *testing.T) {
	ctx := t.Context()
	store := newTestSQLite(t)

	require.NoError(t, store.RemoveMember(ctx, ListAttendance, 999))

	members, err := store.Members(ctx, ListAttendance)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestSQLite_Members(t *testing.T) {
	ctx := t.Context()
	store := newTestSQLite(t)

	for _, id := range []int64{1001, 5, 42} {
		require.NoError(t, store.AddMember(ctx, ListClassReminders, id))
	}
	require.NoError(t, store.AddMember(ctx, ListAttendance, 7))

	members, err := store.Members(ctx, ListClassReminders)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 42, 1001}, members, "members are ordered by chat id")
}
