package domain

import "time"

// User represents a registered account. The token column holds the single
// live session token; it is replaced wholesale on every login.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Token        *string   `json:"token,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
