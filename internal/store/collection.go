package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the pointer side of a stored model: the Base accessors every
// record embeds.
type Record[T any] interface {
	*T
	GetID() string
	SetID(string)
	GetOwner() string
	SetOwner(string)
	SetCreated(time.Time)
}

// Store bundles the database handle with the change hub. It is built once
// at startup and handed to every widget; nothing reaches for a global.
type Store struct {
	DB  *gorm.DB
	Hub *Hub
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db, Hub: NewHub()}
}

// Query describes the filtered, ordered view a widget binds to. An empty
// Owner means the collection is shared and unscoped.
type Query struct {
	Owner string
	Sort  string // column name, defaults to created
	Desc  bool
}

// Collection binds one record type to one named collection. All widgets
// are instances of this with different schemas, filters and sort keys.
type Collection[T any, P Record[T]] struct {
	store *Store
	name  string
}

func NewCollection[T any, P Record[T]](s *Store, name string) *Collection[T, P] {
	return &Collection[T, P]{store: s, name: name}
}

func (c *Collection[T, P]) Name() string { return c.name }

func (c *Collection[T, P]) scope(ctx context.Context, owner string) *gorm.DB {
	tx := c.store.DB.WithContext(ctx).Model(new(T))
	if owner != "" {
		tx = tx.Where("owner_id = ?", owner)
	}
	return tx
}

// List returns the full, freshly ordered result set for the query.
func (c *Collection[T, P]) List(ctx context.Context, q Query) ([]T, error) {
	sort := q.Sort
	if sort == "" {
		sort = "created"
	}
	items := make([]T, 0)
	err := c.scope(ctx, q.Owner).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sort}, Desc: q.Desc}).
		Find(&items).Error
	if err != nil {
		return nil, &ReadError{Collection: c.name, Err: err}
	}
	return items, nil
}

// Get fetches a single record, scoped to the owner when one is given.
func (c *Collection[T, P]) Get(ctx context.Context, owner, id string) (*T, error) {
	var rec T
	err := c.scope(ctx, owner).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &ReadError{Collection: c.name, Err: err}
	}
	return &rec, nil
}

// Insert stamps a server-generated creation time, attaches the owner and
// writes the record. On failure nothing is kept locally: the caller's view
// updates only when the subscription pushes the change back.
func (c *Collection[T, P]) Insert(ctx context.Context, owner string, rec P) (string, error) {
	if rec.GetID() == "" {
		rec.SetID(uuid.NewString())
	}
	rec.SetOwner(owner)
	rec.SetCreated(time.Now().UTC())

	if err := c.store.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return "", &WriteError{Op: "insert", Collection: c.name, Err: err}
	}
	c.store.Hub.Notify(c.name)
	return rec.GetID(), nil
}

// Update writes only the given fields. A record the owner cannot see is
// reported as not found, never touched.
func (c *Collection[T, P]) Update(ctx context.Context, owner, id string, fields map[string]any) error {
	res := c.scope(ctx, owner).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return &WriteError{Op: "update", Collection: c.name, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.store.Hub.Notify(c.name)
	return nil
}

// Put creates or replaces the record at its id. Collections with
// deterministic ids (one roadmap note per user per day) write through
// here so a second save lands on the same document.
func (c *Collection[T, P]) Put(ctx context.Context, owner string, rec P) error {
	rec.SetOwner(owner)
	if err := c.store.DB.WithContext(ctx).Save(rec).Error; err != nil {
		return &WriteError{Op: "put", Collection: c.name, Err: err}
	}
	c.store.Hub.Notify(c.name)
	return nil
}

// Remove deletes the whole record. There is no soft delete.
func (c *Collection[T, P]) Remove(ctx context.Context, owner, id string) error {
	res := c.scope(ctx, owner).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return &WriteError{Op: "remove", Collection: c.name, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.store.Hub.Notify(c.name)
	return nil
}

// Subscribe opens a live view of the query. The first snapshot arrives
// immediately; after that, every change to the collection re-delivers the
// complete result set. Snapshots coalesce under a slow consumer, latest
// wins. Cancel (or the context) tears the subscription down; doing neither
// leaks the listener.
func (c *Collection[T, P]) Subscribe(ctx context.Context, q Query) (<-chan []T, func()) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []T, 1)
	signal, unsub := c.store.Hub.Subscribe(c.name)

	push := func() {
		items, err := c.List(ctx, q)
		if err != nil {
			return
		}
		for {
			select {
			case out <- items:
				return
			default:
			}
			select {
			case <-out: // drop the stale snapshot
			default:
			}
		}
	}

	go func() {
		defer close(out)
		defer unsub()
		push()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signal:
				if !ok {
					return
				}
				push()
			}
		}
	}()

	return out, cancel
}

// Search is the pure client-side filter over an already-synchronized
// snapshot. It never touches the store.
func Search[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
