// Package timers runs the countdown loop behind the time-tracker widget
// and owns the timer state transitions.
package timers

import (
	"context"
	"errors"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"homeboard/internal/models"
	"homeboard/internal/store"
)

// Collection is the timers collection name in the store.
const Collection = "timers"

// Completion is published exactly once when a timer reaches zero.
type Completion struct {
	Timer models.Timer `json:"timer"`
}

// Engine decrements every running timer once a second and flips finished
// timers to stopped. It is started and stopped with the service.
type Engine struct {
	store *store.Store
	cron  *cron.Cron

	mu   sync.Mutex
	next int
	subs map[int]chan Completion
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{
		store: s,
		cron:  cron.New(cron.WithSeconds()),
		subs:  make(map[int]chan Completion),
	}
}

// Start schedules the one-second tick.
func (e *Engine) Start() error {
	if _, err := e.cron.AddFunc("@every 1s", func() {
		e.Tick(context.Background())
	}); err != nil {
		return err
	}
	e.cron.Start()
	return nil
}

// Stop halts the tick loop and waits for an in-flight tick to finish.
func (e *Engine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
}

// Subscribe delivers completion events until cancelled.
func (e *Engine) Subscribe() (<-chan Completion, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.next
	e.next++
	ch := make(chan Completion, 4)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (e *Engine) publish(t models.Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- Completion{Timer: t}:
		default:
		}
	}
}

// Tick advances every running timer by one second. A timer hitting zero is
// stopped, zeroed and announced exactly once.
func (e *Engine) Tick(ctx context.Context) {
	var running []models.Timer
	if err := e.store.DB.WithContext(ctx).Where("is_running = ?", true).Find(&running).Error; err != nil {
		zap.L().Error("timer tick: listing running timers", zap.Error(err))
		return
	}
	if len(running) == 0 {
		return
	}

	for _, t := range running {
		if t.TimeRemaining > 1 {
			err := e.store.DB.WithContext(ctx).Model(&models.Timer{}).
				Where("id = ?", t.ID).
				Update("time_remaining", t.TimeRemaining-1).Error
			if err != nil {
				zap.L().Error("timer tick: decrement", zap.String("timerID", t.ID), zap.Error(err))
			}
			continue
		}

		err := e.store.DB.WithContext(ctx).Model(&models.Timer{}).
			Where("id = ?", t.ID).
			Updates(map[string]any{"is_running": false, "time_remaining": 0}).Error
		if err != nil {
			zap.L().Error("timer tick: complete", zap.String("timerID", t.ID), zap.Error(err))
			continue
		}
		t.IsRunning = false
		t.TimeRemaining = 0
		e.publish(t)
		zap.L().Info("timer completed", zap.String("name", t.Name))
	}

	e.store.Hub.Notify(Collection)
}

// StartTimer starts one timer and pauses every other running timer of the
// same owner in a single transaction, so two tabs racing cannot leave two
// timers running.
func (e *Engine) StartTimer(ctx context.Context, owner, id string) error {
	err := e.store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Timer
		if err := tx.Where("owner_id = ? AND id = ?", owner, id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.Timer{}).
			Where("owner_id = ? AND id <> ? AND is_running = ?", owner, id, true).
			Update("is_running", false).Error; err != nil {
			return err
		}
		fields := map[string]any{"is_running": true}
		if t.TimeRemaining <= 0 {
			fields["time_remaining"] = t.Duration * 60
		}
		return tx.Model(&models.Timer{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return &store.WriteError{Op: "start", Collection: Collection, Err: err}
	}
	e.store.Hub.Notify(Collection)
	return nil
}

// PauseTimer stops the countdown without losing the remaining time.
func (e *Engine) PauseTimer(ctx context.Context, owner, id string) error {
	return e.setState(ctx, owner, id, map[string]any{"is_running": false}, "pause")
}

// ResetTimer stops the timer and restores the full duration.
func (e *Engine) ResetTimer(ctx context.Context, owner, id string) error {
	var t models.Timer
	err := e.store.DB.WithContext(ctx).Where("owner_id = ? AND id = ?", owner, id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return &store.ReadError{Collection: Collection, Err: err}
	}
	return e.setState(ctx, owner, id, map[string]any{
		"is_running":     false,
		"time_remaining": t.Duration * 60,
	}, "reset")
}

func (e *Engine) setState(ctx context.Context, owner, id string, fields map[string]any, op string) error {
	res := e.store.DB.WithContext(ctx).Model(&models.Timer{}).
		Where("owner_id = ? AND id = ?", owner, id).
		Updates(fields)
	if res.Error != nil {
		return &store.WriteError{Op: op, Collection: Collection, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	e.store.Hub.Notify(Collection)
	return nil
}
