package models

import "time"

type Contact struct {
	ID          int64
	Name        string
	LastName    string
	Email       string
	PhoneNumber string
	BornDate    time.Time
	Description string
	CreatedAt   time.Time
}
