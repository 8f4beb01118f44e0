package domain

import "time"

// User is one of the two people writing letters. Users are created out of band
// and only read by this service.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
