package models

import "time"

type User struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Author is the embedded owner reference carried by every todo.
type Author struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
}
