package models

import "time"

// Token is an opaque session credential. A token is valid for as long as it
// exists in the store; there is no expiry column.
type Token struct {
	ID        int64
	Token     string
	UserID    int64
	CreatedAt time.Time
}
