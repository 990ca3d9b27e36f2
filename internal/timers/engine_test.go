package timers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Timer{}))
	return NewEngine(store.New(db))
}

func insertTimer(t *testing.T, e *Engine, timer *models.Timer) string {
	t.Helper()
	col := store.NewCollection[models.Timer](e.store, Collection)
	id, err := col.Insert(context.Background(), "alice", timer)
	require.NoError(t, err)
	return id
}

func getTimer(t *testing.T, e *Engine, id string) models.Timer {
	t.Helper()
	var timer models.Timer
	require.NoError(t, e.store.DB.Where("id = ?", id).First(&timer).Error)
	return timer
}

func TestTickDecrementsRunningTimer(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "focus", Duration: 25, TimeRemaining: 10, IsRunning: true, Type: models.TimerPomodoro,
	})

	e.Tick(context.Background())

	got := getTimer(t, e, id)
	assert.Equal(t, 9, got.TimeRemaining)
	assert.True(t, got.IsRunning)
}

func TestTickIgnoresPausedTimers(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "paused", Duration: 25, TimeRemaining: 10, IsRunning: false, Type: models.TimerPomodoro,
	})

	e.Tick(context.Background())

	assert.Equal(t, 10, getTimer(t, e, id).TimeRemaining)
}

func TestTimerCompletionFiresOnce(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "sprint", Duration: 1, TimeRemaining: 2, IsRunning: true, Type: models.TimerCustom,
	})

	done, cancel := e.Subscribe()
	defer cancel()

	ctx := context.Background()
	e.Tick(ctx)
	e.Tick(ctx)
	e.Tick(ctx) // extra tick must not re-fire the completion

	got := getTimer(t, e, id)
	assert.False(t, got.IsRunning)
	assert.Equal(t, 0, got.TimeRemaining)

	require.Len(t, done, 1, "exactly one completion notification")
	c := <-done
	assert.Equal(t, "sprint", c.Timer.Name)
}

func TestStartTimerPausesOthersAtomically(t *testing.T) {
	e := newEngine(t)
	first := insertTimer(t, e, &models.Timer{
		Name: "first", Duration: 25, TimeRemaining: 100, IsRunning: true, Type: models.TimerPomodoro,
	})
	second := insertTimer(t, e, &models.Timer{
		Name: "second", Duration: 5, TimeRemaining: 300, IsRunning: false, Type: models.TimerBreak,
	})

	require.NoError(t, e.StartTimer(context.Background(), "alice", second))

	assert.False(t, getTimer(t, e, first).IsRunning, "previous running timer must be paused")
	assert.True(t, getTimer(t, e, second).IsRunning)
}

func TestStartTimerRestoresExpiredDuration(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "done", Duration: 5, TimeRemaining: 0, IsRunning: false, Type: models.TimerBreak,
	})

	require.NoError(t, e.StartTimer(context.Background(), "alice", id))

	got := getTimer(t, e, id)
	assert.True(t, got.IsRunning)
	assert.Equal(t, 5*60, got.TimeRemaining)
}

func TestStartTimerForeignOwner(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "mine", Duration: 25, TimeRemaining: 100, Type: models.TimerPomodoro,
	})

	err := e.StartTimer(context.Background(), "bob", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, getTimer(t, e, id).IsRunning)
}

func TestPauseAndReset(t *testing.T) {
	e := newEngine(t)
	id := insertTimer(t, e, &models.Timer{
		Name: "work", Duration: 2, TimeRemaining: 90, IsRunning: true, Type: models.TimerCustom,
	})

	ctx := context.Background()
	require.NoError(t, e.PauseTimer(ctx, "alice", id))
	got := getTimer(t, e, id)
	assert.False(t, got.IsRunning)
	assert.Equal(t, 90, got.TimeRemaining, "pause keeps remaining time")

	require.NoError(t, e.ResetTimer(ctx, "alice", id))
	got = getTimer(t, e, id)
	assert.False(t, got.IsRunning)
	assert.Equal(t, 120, got.TimeRemaining)
}
