package models

type Contact struct {
	Base
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`
	PhotoURL     string `json:"photoUrl,omitempty"`
}
