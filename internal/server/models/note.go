package models

import "time"

type Note struct {
	ID          int64
	Title       string
	Description string
	Done        bool
	Tags        []Tag
	CreatedAt   time.Time
}

type Tag struct {
	ID   int64
	Name string
}
