package models

type Note struct {
	Base
	Title string `json:"title"`
}
