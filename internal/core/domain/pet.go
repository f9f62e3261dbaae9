package domain

import "time"

// MaxPetsPerList caps the number of pets returned by a single listing.
const MaxPetsPerList = 100

// Pet is an owner-scoped record. OwnerID always comes from the authenticated
// caller, never from client input.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Age       int       `json:"age"`
	Notes     string    `json:"notes"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"-"`
}
