package models

import "time"

// User represents a registered wardrobe owner.
//
// Password is stored and compared in plaintext. That is the observed
// contract of the app this service backs (see DESIGN.md); it is kept
// as-is rather than silently upgraded to a hash.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // Never expose this to the client
	CreatedAt time.Time `json:"createdAt"`
}
