package models

type Task struct {
	Base
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `gorm:"default:false" json:"completed"`
}
