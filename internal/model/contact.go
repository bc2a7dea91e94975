package model

import "time"

// ContactMessage represents a message submitted via the portfolio contact form.
// Records are append-only: created once, never updated or deleted.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
