package models

import "time"

// User is the persisted account record. Password always holds the bcrypt
// hash, never the plain text. RefreshToken is the single active refresh
// token for the account (nil when logged out or revoked).
type User struct {
	ID           int64
	Username     string
	Email        string
	Password     string
	RefreshToken *string
	Avatar       string
	Role         Role
	Confirmed    bool
	CreatedAt    time.Time
}
