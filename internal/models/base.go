package models

import "time"

// Base carries the fields shared by every stored record: a document id,
// the owning identity (empty for shared collections) and the
// server-assigned creation time.
type Base struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	OwnerID string    `gorm:"index" json:"ownerId,omitempty"`
	Created time.Time `json:"created"`
}

func (b *Base) GetID() string          { return b.ID }
func (b *Base) SetID(id string)        { b.ID = id }
func (b *Base) GetOwner() string       { return b.OwnerID }
func (b *Base) SetOwner(id string)     { b.OwnerID = id }
func (b *Base) SetCreated(t time.Time) { b.Created = t }
