package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubNotifyCoalesces(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("tasks")
	defer cancel()

	h.Notify("tasks")
	h.Notify("tasks")
	h.Notify("tasks")

	<-ch
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}
}

func TestHubCollectionsAreIndependent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("tasks")
	defer cancel()

	h.Notify("notes")
	select {
	case <-ch:
		t.Fatal("notes change must not wake tasks subscribers")
	default:
	}
}

func TestHubCancelIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("tasks")
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok, "cancelled subscription channel must be closed")
}
