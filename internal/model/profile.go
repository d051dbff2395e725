package model

import "time"

// UserProfile identifies one isolated user of the shared store. At most one
// profile is active at a time; switching profiles swaps the store contents.
type UserProfile struct {
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"isActive"`
}

// ProfileSnapshot is a profile's entire persisted state at the moment it was
// deactivated: a flat map of store key to raw JSON value.
type ProfileSnapshot map[string]string
