package models

type Bookmark struct {
	Base
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}
