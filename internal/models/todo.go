package models

import "time"

type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	LimitDate   *time.Time `json:"limit_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AuthorUUID  string     `json:"author_uuid"`
	Author      Author     `json:"author"`
}
