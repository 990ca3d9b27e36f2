package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homeboard/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection: the in-memory database is per-connection.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Task{}, &models.ClipboardItem{}))
	return New(db)
}

func taskCollection(s *Store) *Collection[models.Task, *models.Task] {
	return NewCollection[models.Task](s, "tasks")
}

func nextSnapshot(t *testing.T, ch <-chan []models.Task) []models.Task {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "subscription closed early")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func TestInsertAppearsInNextSnapshot(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	snaps, cancel := tasks.Subscribe(ctx, Query{Owner: "alice", Desc: true})
	defer cancel()
	require.Empty(t, nextSnapshot(t, snaps))

	id, err := tasks.Insert(ctx, "alice", &models.Task{Title: "Buy milk"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap := nextSnapshot(t, snaps)
	require.Len(t, snap, 1)
	assert.Equal(t, id, snap[0].ID)
	assert.Equal(t, "Buy milk", snap[0].Title)
	assert.Equal(t, "alice", snap[0].OwnerID)
	assert.False(t, snap[0].Created.IsZero(), "creation timestamp must be stamped")
}

func TestOwnerFilterNeverLeaks(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	_, err := tasks.Insert(ctx, "alice", &models.Task{Title: "alice's"})
	require.NoError(t, err)
	_, err = tasks.Insert(ctx, "bob", &models.Task{Title: "bob's"})
	require.NoError(t, err)

	snaps, cancel := tasks.Subscribe(ctx, Query{Owner: "bob", Desc: true})
	defer cancel()

	snap := nextSnapshot(t, snaps)
	require.Len(t, snap, 1)
	assert.Equal(t, "bob", snap[0].OwnerID)
}

func TestRemoveDropsRecordFromSnapshot(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	id, err := tasks.Insert(ctx, "alice", &models.Task{Title: "gone soon"})
	require.NoError(t, err)

	snaps, cancel := tasks.Subscribe(ctx, Query{Owner: "alice", Desc: true})
	defer cancel()
	require.Len(t, nextSnapshot(t, snaps), 1)

	require.NoError(t, tasks.Remove(ctx, "alice", id))
	assert.Empty(t, nextSnapshot(t, snaps))
}

func TestRemoveIsOwnerScoped(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	id, err := tasks.Insert(ctx, "alice", &models.Task{Title: "alice's"})
	require.NoError(t, err)

	err = tasks.Remove(ctx, "bob", id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tasks.Get(ctx, "alice", id)
	assert.NoError(t, err, "foreign delete must not touch the record")
}

func TestUpdateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	id, err := tasks.Insert(ctx, "alice", &models.Task{Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, tasks.Update(ctx, "alice", id, map[string]any{"completed": true}))
	require.NoError(t, tasks.Update(ctx, "alice", id, map[string]any{"completed": true}))

	rec, err := tasks.Get(ctx, "alice", id)
	require.NoError(t, err)
	assert.True(t, rec.Completed, "second update must not toggle back")
}

func TestTaskToggleScenario(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	id, err := tasks.Insert(ctx, "alice", &models.Task{Title: "Buy milk"})
	require.NoError(t, err)
	_, err = tasks.Insert(ctx, "alice", &models.Task{Title: "Walk dog"})
	require.NoError(t, err)

	snaps, cancel := tasks.Subscribe(ctx, Query{Owner: "alice", Desc: true})
	defer cancel()

	snap := nextSnapshot(t, snaps)
	before := len(Search(snap, func(tk models.Task) bool { return !tk.Completed }))
	require.Equal(t, 2, before)

	require.NoError(t, tasks.Update(ctx, "alice", id, map[string]any{"completed": true}))

	snap = nextSnapshot(t, snaps)
	var toggled *models.Task
	for i := range snap {
		if snap[i].ID == id {
			toggled = &snap[i]
		}
	}
	require.NotNil(t, toggled)
	assert.True(t, toggled.Completed)
	after := len(Search(snap, func(tk models.Task) bool { return !tk.Completed }))
	assert.Equal(t, before-1, after)
}

func TestUpdateMissingRecordFails(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)

	err := tasks.Update(context.Background(), "alice", "no-such-id", map[string]any{"completed": true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharedCollectionHasNoOwnerFilter(t *testing.T) {
	s := newTestStore(t)
	clip := NewCollection[models.ClipboardItem](s, "clipboard")
	ctx := context.Background()

	_, err := clip.Insert(ctx, "", &models.ClipboardItem{Content: "hello"})
	require.NoError(t, err)

	items, err := clip.List(ctx, Query{Desc: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].OwnerID)
}

func TestListOrdering(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)
	ctx := context.Background()

	// Force distinct creation stamps.
	older := &models.Task{Title: "older"}
	_, err := tasks.Insert(ctx, "alice", older)
	require.NoError(t, err)
	require.NoError(t, s.DB.Model(older).Update("created", time.Now().UTC().Add(-time.Hour)).Error)
	_, err = tasks.Insert(ctx, "alice", &models.Task{Title: "newer"})
	require.NoError(t, err)

	items, err := tasks.List(ctx, Query{Owner: "alice", Desc: true})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Title)
	assert.Equal(t, "older", items[1].Title)
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	s := newTestStore(t)
	tasks := taskCollection(s)

	snaps, cancel := tasks.Subscribe(context.Background(), Query{Owner: "alice"})
	nextSnapshot(t, snaps)
	cancel()

	select {
	case _, ok := <-snaps:
		assert.False(t, ok, "channel must close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestSearchIsPureFilter(t *testing.T) {
	items := []models.Task{
		{Title: "Buy milk"},
		{Title: "Read book"},
	}
	got := Search(items, func(tk models.Task) bool {
		return strings.Contains(strings.ToLower(tk.Title), "milk")
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
	assert.Len(t, items, 2)
}
