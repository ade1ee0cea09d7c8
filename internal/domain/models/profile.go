package models

import (
	"time"
)

// Profile is the display record for an actor. Maintained by the auth
// layer; this service only reads it to resolve display names.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Company   string    `json:"company" db:"company"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UnknownUserName is the display name substituted when an actor's profile
// cannot be resolved. Lookup failures degrade per entry, never the whole read.
const UnknownUserName = "Unknown User"
