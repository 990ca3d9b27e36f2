package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"homeboard/internal/store"
)

func sseHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
}

// streamSnapshots is the live-subscription endpoint shared by every
// widget: one "snapshot" event per remote change, carrying the complete,
// freshly ordered result set. Closing the request tears the subscription
// down.
func streamSnapshots[T any, P store.Record[T]](c *gin.Context, col *store.Collection[T, P], q store.Query) {
	sseHeaders(c)

	ctx := c.Request.Context()
	snaps, cancel := col.Subscribe(ctx, q)
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *Handler) streamTasks(c *gin.Context) {
	streamSnapshots(c, h.Tasks, store.Query{Owner: identity(c).ID, Desc: true})
}

func (h *Handler) streamNotes(c *gin.Context) {
	streamSnapshots(c, h.Notes, store.Query{Owner: identity(c).ID, Desc: true})
}

func (h *Handler) streamClipboard(c *gin.Context) {
	streamSnapshots(c, h.Clipboard, store.Query{Desc: true})
}

func (h *Handler) streamContacts(c *gin.Context) {
	streamSnapshots(c, h.Contacts, store.Query{Owner: identity(c).ID, Sort: "name"})
}

func (h *Handler) streamBookmarks(c *gin.Context) {
	streamSnapshots(c, h.Bookmarks, store.Query{Owner: identity(c).ID, Desc: true})
}

func (h *Handler) streamRoadmapNotes(c *gin.Context) {
	streamSnapshots(c, h.RoadmapNotes, store.Query{Owner: identity(c).ID, Desc: true})
}

// streamTimers interleaves the snapshot stream with "timer.done" events so
// the client can play the completion sound exactly once.
func (h *Handler) streamTimers(c *gin.Context) {
	sseHeaders(c)

	id := identity(c)
	ctx := c.Request.Context()

	snaps, cancelSnaps := h.Timers.Subscribe(ctx, store.Query{Owner: id.ID, Desc: true})
	defer cancelSnaps()
	done, cancelDone := h.Engine.Subscribe()
	defer cancelDone()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case comp, ok := <-done:
			if !ok {
				return false
			}
			if comp.Timer.OwnerID == id.ID {
				c.SSEvent("timer.done", comp)
			}
			return true
		case <-ctx.Done():
			return false
		}
	})
}
