package models

// ClipboardItem lives in a shared collection: no owner is ever attached.
type ClipboardItem struct {
	Base
	Content string `json:"content"`
}
